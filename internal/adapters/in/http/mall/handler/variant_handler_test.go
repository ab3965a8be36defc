package mallHandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	mallHandler "github.com/komekovv/zen-moda-client-sub000/internal/adapters/in/http/mall/handler"
	mallquery "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall"
	dto "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall/dto"
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
	"github.com/komekovv/zen-moda-client-sub000/internal/domain/variant"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mapReader map[string]productdom.ProductDetail

func (m mapReader) GetDetail(_ context.Context, id string) (productdom.ProductDetail, error) {
	p, ok := m[id]
	if !ok {
		return productdom.ProductDetail{}, productdom.ErrNotFound
	}
	return p, nil
}

type failingQuery struct{ mallHandler.VariantQuery }

func (failingQuery) GetVariantData(context.Context, string) (dto.VariantDataDTO, error) {
	return dto.VariantDataDTO{}, context.DeadlineExceeded
}

func newServer() http.Handler {
	reader := mapReader{
		"polo": {
			ID:        "polo",
			IsVariant: true,
			Variants: []productdom.Variant{
				{ID: "b-m", SKU: "POLO-GARA-M", Size: "M", Stock: 3, BasePrice: 15000},
				{ID: "w-m", SKU: "POLO-AK-M", Size: "M", Stock: 0, BasePrice: 15000},
				{ID: "w-l", SKU: "POLO-AK-L", Size: "L", Stock: 1, BasePrice: 15000},
			},
		},
		"bad": {ID: "bad", Variants: []productdom.Variant{{ID: "x"}}},
	}
	q := mallquery.NewVariantQuery(reader, variant.NewBuilder())
	return mallHandler.NewVariantHandler(q, nil)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestVariantHandler_GetVariantData(t *testing.T) {
	rec := do(t, newServer(), http.MethodGet, "/mall/products/polo/variants", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decode[dto.VariantDataDTO](t, rec)
	assert.Equal(t, "polo", got.ProductID)
	require.Len(t, got.Colors, 2)
	assert.Equal(t, "color-Black", got.Colors[0].ID)
	assert.Len(t, got.Variants, 3)
}

func TestVariantHandler_Resolve(t *testing.T) {
	h := newServer()

	rec := do(t, h, http.MethodGet, "/mall/products/polo/variants/resolve?color=color-White&size=L", "")
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.ResolveDTO](t, rec)
	assert.True(t, got.Found)
	assert.True(t, got.Available)
	assert.Equal(t, "w-l", got.Variant.ID)

	rec = do(t, h, http.MethodGet, "/mall/products/polo/variants/resolve?color=color-Black&size=L", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[dto.ResolveDTO](t, rec).Found)

	rec = do(t, h, http.MethodGet, "/mall/products/polo/variants/resolve?color=color-Black", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVariantHandler_Projections(t *testing.T) {
	h := newServer()

	rec := do(t, h, http.MethodGet, "/mall/products/polo/variants/sizes?color=color-White", "")
	require.Equal(t, http.StatusOK, rec.Code)
	sizes := decode[dto.SizesDTO](t, rec)
	assert.Equal(t, "L", sizes.First)

	rec = do(t, h, http.MethodGet, "/mall/products/polo/variants/colors?size=M", "")
	require.Equal(t, http.StatusOK, rec.Code)
	colors := decode[dto.ColorsDTO](t, rec)
	assert.Equal(t, "color-Black", colors.First)
}

func TestVariantHandler_Select(t *testing.T) {
	h := newServer()

	rec := do(t, h, http.MethodPost, "/mall/products/polo/variants/select",
		`{"current":{"colorId":"color-Black","sizeId":"M"},"axis":"color","value":"color-White"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got := decode[dto.SelectionDTO](t, rec)
	assert.Equal(t, "color-White", got.ColorID)
	assert.Equal(t, "L", got.SizeID, "White/M is out of stock")
	assert.Equal(t, "resolved", got.State)
	assert.Equal(t, "w-l", got.TargetID)
}

func TestVariantHandler_SelectRejectsBadBodies(t *testing.T) {
	h := newServer()
	bodies := map[string]string{
		"not json":      `{`,
		"unknown field": `{"axis":"color","value":"color-Black","extra":1}`,
		"bad axis":      `{"axis":"fit","value":"M"}`,
		"missing value": `{"axis":"size"}`,
		"unknown size":  `{"axis":"size","value":"XXL"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/mall/products/polo/variants/select", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestVariantHandler_StatusCodes(t *testing.T) {
	h := newServer()

	cases := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{"unknown product", http.MethodGet, "/mall/products/nope/variants", http.StatusNotFound},
		{"invalid product record", http.MethodGet, "/mall/products/bad/variants", http.StatusUnprocessableEntity},
		{"unknown action", http.MethodGet, "/mall/products/polo/variants/matrix", http.StatusNotFound},
		{"wrong resource", http.MethodGet, "/mall/products/polo/reviews", http.StatusNotFound},
		{"missing id", http.MethodGet, "/mall/products//variants", http.StatusNotFound},
		{"post to read route", http.MethodPost, "/mall/products/polo/variants", http.StatusMethodNotAllowed},
		{"get to select", http.MethodGet, "/mall/products/polo/variants/select", http.StatusMethodNotAllowed},
		{"trailing slash", http.MethodGet, "/mall/products/polo/variants/", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, tc.method, tc.target, "")
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestVariantHandler_InternalErrorIsNotEchoed(t *testing.T) {
	h := mallHandler.NewVariantHandler(failingQuery{}, nil)

	rec := do(t, h, http.MethodGet, "/mall/products/p/variants", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
}

func TestVariantHandler_NotReady(t *testing.T) {
	rec := do(t, mallHandler.NewVariantHandler(nil, nil), http.MethodGet, "/mall/products/p/variants", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

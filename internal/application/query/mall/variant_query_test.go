package mall_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	mallquery "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall"
	dto "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall/dto"
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
	"github.com/komekovv/zen-moda-client-sub000/internal/domain/variant"
)

type fakeReader struct {
	mu       sync.Mutex
	products map[string]productdom.ProductDetail
	calls    int
}

func (f *fakeReader) GetDetail(_ context.Context, id string) (productdom.ProductDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	p, ok := f.products[id]
	if !ok {
		return productdom.ProductDetail{}, productdom.ErrNotFound
	}
	return p, nil
}

type prefixPhotos struct{ fail bool }

func (r prefixPhotos) ResolvePhotoURL(_ context.Context, ref string) (string, error) {
	if r.fail {
		return "", errors.New("bucket unreachable")
	}
	return "https://cdn.example/" + ref, nil
}

func price(v int64) *int64 { return &v }

func catalog() *fakeReader {
	return &fakeReader{products: map[string]productdom.ProductDetail{
		"shirt": {
			ID:        "shirt",
			IsVariant: true,
			Variants: []productdom.Variant{
				{ID: "v1", SKU: "SHIRT-GARA-M", Size: "M", Stock: 5, BasePrice: 12000, Photos: []string{"black.jpg"}},
				{ID: "v2", SKU: "SHIRT-AK-M", Size: "M", Stock: 0, BasePrice: 12000, DiscountPrice: price(9900)},
				{ID: "v3", SKU: "SHIRT-AK-L", Size: "L", Stock: 2, BasePrice: 13000},
			},
		},
		"dup": {
			ID:        "dup",
			IsVariant: true,
			Variants: []productdom.Variant{
				{ID: "a", SKU: "GARA-M", Size: "M", Stock: 1},
				{ID: "b", SKU: "BLACK-M", Size: "M", Stock: 3},
			},
		},
		"scarf": {
			ID: "scarf", Color: &productdom.Color{ID: "red", Name: "Red"}, Size: "ONE", InStock: true, BasePrice: 5000,
			Photos: []string{"scarf.jpg"},
		},
		"broken": {
			ID: "broken", Variants: []productdom.Variant{{ID: "x", SKU: "", Stock: -1}},
		},
	}}
}

func newQuery(r productdom.Reader, opts ...mallquery.VariantQueryOption) *mallquery.VariantQuery {
	return mallquery.NewVariantQuery(r, variant.NewBuilder(), opts...)
}

func TestGetVariantData(t *testing.T) {
	q := newQuery(catalog(), mallquery.WithPhotoURLResolver(prefixPhotos{}))

	got, err := q.GetVariantData(context.Background(), "shirt")
	require.NoError(t, err)

	assert.Equal(t, "shirt", got.ProductID)
	assert.False(t, got.Standalone)
	assert.Equal(t, []dto.ColorOptionDTO{
		{ID: "color-Black", Key: "Black", Name: "Black", Hex: "#000000", Image: "https://cdn.example/black.jpg", Available: true},
		{ID: "color-White", Key: "White", Name: "White", Hex: "#FFFFFF", Available: true},
	}, got.Colors)
	assert.Equal(t, []dto.SizeOptionDTO{
		{ID: "M", Label: "M", Available: true},
		{ID: "L", Label: "L", Available: true},
	}, got.Sizes)

	require.Len(t, got.Variants, 3)
	assert.Equal(t, "color-White", got.Variants[1].ColorID)
	assert.Equal(t, int64(9900), got.Variants[1].Variant.Price)
	assert.False(t, got.Variants[1].Variant.InStock)
	assert.Equal(t, []string{"https://cdn.example/black.jpg"}, got.Variants[0].Variant.Photos)

	require.NotNil(t, got.Price)
	assert.Equal(t, dto.PriceRangeDTO{Min: 9900, Max: 13000}, *got.Price)
	assert.Zero(t, got.Collisions)
}

func TestGetVariantData_PhotoFailureKeepsReference(t *testing.T) {
	q := newQuery(catalog(), mallquery.WithPhotoURLResolver(prefixPhotos{fail: true}))

	got, err := q.GetVariantData(context.Background(), "shirt")
	require.NoError(t, err)
	assert.Equal(t, "black.jpg", got.Colors[0].Image)
}

func TestGetVariantData_CollisionIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	q := newQuery(catalog(), mallquery.WithLogger(zap.New(core)))

	got, err := q.GetVariantData(context.Background(), "dup")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Collisions)
	require.Len(t, got.Variants, 1)
	assert.Equal(t, "a", got.Variants[0].Variant.ID, "first-seen wins")

	entries := logs.FilterMessage("variant dropped: duplicate color/size").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "a", fields["keptVariantId"])
	assert.Equal(t, "b", fields["droppedVariantId"])
	assert.Equal(t, "mall.variant", entries[0].LoggerName)
}

func TestGetVariantData_Errors(t *testing.T) {
	q := newQuery(catalog())
	ctx := context.Background()

	_, err := q.GetVariantData(ctx, "missing")
	assert.ErrorIs(t, err, productdom.ErrNotFound)

	_, err = q.GetVariantData(ctx, "broken")
	assert.ErrorIs(t, err, productdom.ErrInvalidProduct)

	_, err = q.GetVariantData(ctx, "  ")
	assert.ErrorIs(t, err, mallquery.ErrInvalidArgument)

	_, err = mallquery.NewVariantQuery(nil, nil).GetVariantData(ctx, "shirt")
	assert.Error(t, err)
}

func TestGetVariantData_Standalone(t *testing.T) {
	q := newQuery(catalog())

	got, err := q.GetVariantData(context.Background(), "scarf")
	require.NoError(t, err)
	assert.True(t, got.Standalone)
	require.Len(t, got.Colors, 1)
	assert.Equal(t, "color-red", got.Colors[0].ID)
	assert.Len(t, got.Sizes, 1)
	assert.Empty(t, got.Variants)
	require.NotNil(t, got.Price)
	assert.Equal(t, int64(5000), got.Price.Min)
}

func TestResolveVariant(t *testing.T) {
	q := newQuery(catalog())
	ctx := context.Background()

	got, err := q.ResolveVariant(ctx, "shirt", "color-White", "M")
	require.NoError(t, err)
	assert.True(t, got.Found)
	assert.False(t, got.Available)
	require.NotNil(t, got.Variant)
	assert.Equal(t, "v2", got.Variant.ID)

	got, err = q.ResolveVariant(ctx, "shirt", "color-Black", "L")
	require.NoError(t, err)
	assert.False(t, got.Found, "not purchasable is not an error")
	assert.Nil(t, got.Variant)

	_, err = q.ResolveVariant(ctx, "shirt", "", "M")
	assert.ErrorIs(t, err, mallquery.ErrInvalidArgument)
}

func TestAvailableSizesAndColors(t *testing.T) {
	q := newQuery(catalog())
	ctx := context.Background()

	sizes, err := q.AvailableSizes(ctx, "shirt", "color-White")
	require.NoError(t, err)
	assert.Equal(t, []dto.SizeOptionDTO{
		{ID: "M", Label: "M", Available: false},
		{ID: "L", Label: "L", Available: true},
	}, sizes.Sizes)
	assert.Equal(t, "L", sizes.First)

	colors, err := q.AvailableColors(ctx, "shirt", "L")
	require.NoError(t, err)
	avail := map[string]bool{}
	for _, c := range colors.Colors {
		avail[c.ID] = c.Available
	}
	assert.Equal(t, map[string]bool{"color-Black": false, "color-White": true}, avail)
	assert.Equal(t, "color-White", colors.First)

	_, err = q.AvailableSizes(ctx, "shirt", "")
	assert.ErrorIs(t, err, mallquery.ErrInvalidArgument)
	_, err = q.AvailableColors(ctx, "shirt", " ")
	assert.ErrorIs(t, err, mallquery.ErrInvalidArgument)
}

func TestSelect(t *testing.T) {
	q := newQuery(catalog())
	ctx := context.Background()

	s, err := q.Select(ctx, "shirt", dto.SelectionDTO{}, "color", "color-Black")
	require.NoError(t, err)
	assert.Equal(t, "color_chosen", s.State)
	assert.Empty(t, s.TargetID)

	s, err = q.Select(ctx, "shirt", s, "size", "M")
	require.NoError(t, err)
	assert.Equal(t, "resolved", s.State)
	assert.Equal(t, "v1", s.TargetID)

	// White/M is out of stock; White/L is the only white in stock
	s, err = q.Select(ctx, "shirt", s, "color", "color-White")
	require.NoError(t, err)
	assert.Equal(t, "L", s.SizeID)
	assert.Equal(t, "resolved", s.State)
	assert.Equal(t, "v3", s.TargetID)
}

func TestSelect_SettleOnly(t *testing.T) {
	q := newQuery(catalog())

	s, err := q.Select(context.Background(), "shirt",
		dto.SelectionDTO{ColorID: "color-White", SizeID: "M", State: "resolved"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "unresolved", s.State)
	require.NotNil(t, s.Variant)
	assert.Equal(t, "v2", s.Variant.ID)
	assert.Empty(t, s.TargetID)
}

func TestSelect_Standalone(t *testing.T) {
	q := newQuery(catalog())
	ctx := context.Background()

	s, err := q.Select(ctx, "scarf", dto.SelectionDTO{}, "color", "color-red")
	require.NoError(t, err)
	s, err = q.Select(ctx, "scarf", s, "size", "ONE")
	require.NoError(t, err)

	assert.Equal(t, "resolved", s.State)
	assert.True(t, s.UsesProductID)
	assert.Equal(t, "scarf", s.TargetID)
}

func TestSelect_InvalidArguments(t *testing.T) {
	q := newQuery(catalog())
	ctx := context.Background()

	cases := map[string]struct {
		cur   dto.SelectionDTO
		axis  string
		value string
	}{
		"unknown axis":          {axis: "fit", value: "M"},
		"unknown color":         {axis: "color", value: "color-Teal"},
		"unknown size":          {axis: "size", value: "XXL"},
		"unknown current color": {cur: dto.SelectionDTO{ColorID: "color-Teal"}, axis: "size", value: "M"},
		"unknown current size":  {cur: dto.SelectionDTO{SizeID: "XXL"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := q.Select(ctx, "shirt", tc.cur, tc.axis, tc.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, mallquery.ErrInvalidArgument)
		})
	}
}

func TestVariantQuery_ConcurrentCalls(t *testing.T) {
	r := catalog()
	q := newQuery(r)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := q.GetVariantData(context.Background(), "shirt")
			if err == nil && !strings.EqualFold(got.ProductID, "shirt") {
				err = errors.New("wrong product")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.LessOrEqual(t, r.calls, 16)
}

// blockingReader holds GetDetail open until release closes.
type blockingReader struct {
	*fakeReader
	entered chan struct{}
	release chan struct{}
	once    sync.Once
	loadCtx context.Context
}

func (b *blockingReader) GetDetail(ctx context.Context, id string) (productdom.ProductDetail, error) {
	b.once.Do(func() {
		b.loadCtx = ctx
		close(b.entered)
	})
	select {
	case <-b.release:
	case <-ctx.Done():
		return productdom.ProductDetail{}, ctx.Err()
	}
	return b.fakeReader.GetDetail(ctx, id)
}

func TestVariantQuery_CancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	r := &blockingReader{fakeReader: catalog(), entered: make(chan struct{}), release: make(chan struct{})}
	q := newQuery(r, mallquery.WithLoadTimeout(5*time.Second))

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := q.GetVariantData(ctxA, "shirt")
		errA <- err
	}()

	<-r.entered
	cancelA()
	assert.ErrorIs(t, <-errA, context.Canceled)
	assert.NoError(t, r.loadCtx.Err(), "load must outlive the caller that started it")

	errB := make(chan error, 1)
	go func() {
		got, err := q.GetVariantData(context.Background(), "shirt")
		if err == nil && got.ProductID != "shirt" {
			err = errors.New("wrong product")
		}
		errB <- err
	}()

	close(r.release)
	require.NoError(t, <-errB)

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.LessOrEqual(t, r.calls, 2)
}

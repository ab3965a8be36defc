// internal/adapters/in/http/mall/handler/variant_handler.go
package mallHandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	dto "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall/dto"
)

const (
	productsPrefix = "/mall/products/"
	maxSelectBody  = 64 << 10
)

// VariantQuery is the contract the handler needs from the application layer.
// The concrete implementation is application/query/mall.VariantQuery.
type VariantQuery interface {
	GetVariantData(ctx context.Context, productID string) (dto.VariantDataDTO, error)
	ResolveVariant(ctx context.Context, productID, colorID, sizeID string) (dto.ResolveDTO, error)
	AvailableSizes(ctx context.Context, productID, colorID string) (dto.SizesDTO, error)
	AvailableColors(ctx context.Context, productID, sizeID string) (dto.ColorsDTO, error)
	Select(ctx context.Context, productID string, current dto.SelectionDTO, axis, value string) (dto.SelectionDTO, error)
}

// VariantHandler serves the product page variant picker.
//
// Routes:
// - GET  /mall/products/{id}/variants
// - GET  /mall/products/{id}/variants/resolve?color=&size=
// - GET  /mall/products/{id}/variants/sizes?color=
// - GET  /mall/products/{id}/variants/colors?size=
// - POST /mall/products/{id}/variants/select
type VariantHandler struct {
	Query VariantQuery
	Log   *zap.Logger
}

func NewVariantHandler(q VariantQuery, log *zap.Logger) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &VariantHandler{Query: q, Log: log.Named("mall.handler.variant")}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

func (h *VariantHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Query == nil {
		internalError(w, "variant handler is not ready")
		return
	}

	productID, action, ok := parseVariantPath(r.URL.Path)
	if !ok {
		notFound(w)
		return
	}

	switch action {
	case "select":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		h.handleSelect(w, r, productID)
		return
	case "", "resolve", "sizes", "colors":
		if r.Method != http.MethodGet {
			methodNotAllowed(w, http.MethodGet)
			return
		}
	default:
		notFound(w)
		return
	}

	ctx := r.Context()
	qs := r.URL.Query()

	var (
		body any
		err  error
	)
	switch action {
	case "":
		body, err = h.Query.GetVariantData(ctx, productID)
	case "resolve":
		body, err = h.Query.ResolveVariant(ctx, productID, qs.Get("color"), qs.Get("size"))
	case "sizes":
		body, err = h.Query.AvailableSizes(ctx, productID, qs.Get("color"))
	case "colors":
		body, err = h.Query.AvailableColors(ctx, productID, qs.Get("size"))
	}
	if err != nil {
		h.logError(productID, action, err)
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *VariantHandler) handleSelect(w http.ResponseWriter, r *http.Request, productID string) {
	var req dto.SelectRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSelectBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if err := requestValidator().Struct(req); err != nil {
		badRequest(w, validationMessage(err))
		return
	}

	out, err := h.Query.Select(r.Context(), productID, req.Current, req.Axis, req.Value)
	if err != nil {
		h.logError(productID, "select", err)
		writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *VariantHandler) logError(productID, action string, err error) {
	h.Log.Warn("variant request failed",
		zap.String("productId", productID),
		zap.String("action", action),
		zap.Error(err),
	)
}

// parseVariantPath splits /mall/products/{id}/variants[/{action}].
func parseVariantPath(p string) (productID, action string, ok bool) {
	p = strings.TrimSuffix(p, "/")
	if !strings.HasPrefix(p, productsPrefix) {
		return "", "", false
	}
	parts := strings.Split(strings.TrimPrefix(p, productsPrefix), "/")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", false
	}
	productID = strings.TrimSpace(parts[0])
	if productID == "" || parts[1] != "variants" {
		return "", "", false
	}
	if len(parts) == 3 {
		action = parts[2]
	}
	return productID, action, true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return "invalid " + strings.ToLower(fe.Field()) + " (" + fe.Tag() + ")"
	}
	return "invalid request"
}

// internal/application/query/mall/variant_query.go
package mall

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	dto "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall/dto"
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
	"github.com/komekovv/zen-moda-client-sub000/internal/domain/variant"
)

// ============================================================
// Ports (minimal contracts for this query)
// ============================================================

// PhotoURLResolver turns a stored photo reference into a URL the client can load.
type PhotoURLResolver interface {
	ResolvePhotoURL(ctx context.Context, ref string) (string, error)
}

// ============================================================
// Query
// ============================================================

// VariantQuery loads a product, builds its variant index and projects it for
// the mall product page. Every call builds a fresh index.
type VariantQuery struct {
	Products productdom.Reader
	Builder  *variant.Builder
	Photos   PhotoURLResolver
	Log      *zap.Logger

	// LoadTimeout bounds one shared product load.
	LoadTimeout time.Duration

	loads singleflight.Group
}

const defaultLoadTimeout = 10 * time.Second

type VariantQueryOption func(*VariantQuery)

func WithPhotoURLResolver(r PhotoURLResolver) VariantQueryOption {
	return func(q *VariantQuery) { q.Photos = r }
}

func WithLogger(l *zap.Logger) VariantQueryOption {
	return func(q *VariantQuery) {
		if l != nil {
			q.Log = l
		}
	}
}

func WithLoadTimeout(d time.Duration) VariantQueryOption {
	return func(q *VariantQuery) {
		if d > 0 {
			q.LoadTimeout = d
		}
	}
}

func NewVariantQuery(products productdom.Reader, builder *variant.Builder, opts ...VariantQueryOption) *VariantQuery {
	if builder == nil {
		builder = variant.NewBuilder()
	}
	q := &VariantQuery{
		Products:    products,
		Builder:     builder,
		Log:         zap.NewNop(),
		LoadTimeout: defaultLoadTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	q.Log = q.Log.Named("mall.variant")
	return q
}

// GetVariantData returns the full picker payload for productID.
func (q *VariantQuery) GetVariantData(ctx context.Context, productID string) (dto.VariantDataDTO, error) {
	idx, err := q.index(ctx, productID)
	if err != nil {
		return dto.VariantDataDTO{}, err
	}

	out := dto.VariantDataDTO{
		ProductID:  idx.ProductID(),
		Standalone: idx.Standalone(),
		Colors:     q.colorsDTO(ctx, idx.Colors()),
		Sizes:      sizesDTO(idx.Sizes()),
		Variants:   make([]dto.VariantEntryDTO, 0, idx.Len()),
		Collisions: len(idx.Collisions()),
	}
	for _, k := range idx.Keys() {
		v, ok := idx.Lookup(k.ColorID, k.SizeID)
		if !ok {
			continue
		}
		out.Variants = append(out.Variants, dto.VariantEntryDTO{
			ColorID: k.ColorID,
			SizeID:  k.SizeID,
			Variant: q.variantDTO(ctx, v),
		})
	}
	if lo, hi, ok := idx.PriceRange(); ok {
		out.Price = &dto.PriceRangeDTO{Min: lo, Max: hi}
	}
	return out, nil
}

// ResolveVariant looks up the variant behind (colorID, sizeID).
func (q *VariantQuery) ResolveVariant(ctx context.Context, productID, colorID, sizeID string) (dto.ResolveDTO, error) {
	colorID, sizeID = strings.TrimSpace(colorID), strings.TrimSpace(sizeID)
	if colorID == "" || sizeID == "" {
		return dto.ResolveDTO{}, fmt.Errorf("%w: color and size are required", ErrInvalidArgument)
	}

	idx, err := q.index(ctx, productID)
	if err != nil {
		return dto.ResolveDTO{}, err
	}

	out := dto.ResolveDTO{ProductID: idx.ProductID(), ColorID: colorID, SizeID: sizeID}
	if v := variant.Resolve(idx, colorID, sizeID); v != nil {
		vd := q.variantDTO(ctx, *v)
		out.Found = true
		out.Available = v.InStock()
		out.Variant = &vd
	}
	return out, nil
}

// AvailableSizes projects size availability with colorID fixed.
func (q *VariantQuery) AvailableSizes(ctx context.Context, productID, colorID string) (dto.SizesDTO, error) {
	colorID = strings.TrimSpace(colorID)
	if colorID == "" {
		return dto.SizesDTO{}, fmt.Errorf("%w: color is required", ErrInvalidArgument)
	}
	idx, err := q.index(ctx, productID)
	if err != nil {
		return dto.SizesDTO{}, err
	}

	sizes := variant.AvailableSizesForColor(idx, colorID)
	return dto.SizesDTO{
		ProductID: idx.ProductID(),
		ColorID:   colorID,
		Sizes:     sizesDTO(sizes),
		First:     variant.FirstAvailableSize(sizes),
	}, nil
}

// AvailableColors projects color availability with sizeID fixed.
func (q *VariantQuery) AvailableColors(ctx context.Context, productID, sizeID string) (dto.ColorsDTO, error) {
	sizeID = strings.TrimSpace(sizeID)
	if sizeID == "" {
		return dto.ColorsDTO{}, fmt.Errorf("%w: size is required", ErrInvalidArgument)
	}
	idx, err := q.index(ctx, productID)
	if err != nil {
		return dto.ColorsDTO{}, err
	}

	colors := variant.AvailableColorsForSize(idx, sizeID)
	return dto.ColorsDTO{
		ProductID: idx.ProductID(),
		SizeID:    sizeID,
		Colors:    q.colorsDTO(ctx, colors),
		First:     variant.FirstAvailableColor(colors),
	}, nil
}

// Select applies one picker step. axis is "color", "size", or "" to only
// re-settle current.
func (q *VariantQuery) Select(ctx context.Context, productID string, current dto.SelectionDTO, axis, value string) (dto.SelectionDTO, error) {
	idx, err := q.index(ctx, productID)
	if err != nil {
		return dto.SelectionDTO{}, err
	}

	cur := variant.Selection{
		ColorID: strings.TrimSpace(current.ColorID),
		SizeID:  strings.TrimSpace(current.SizeID),
	}
	if cur.ColorID != "" && !hasColor(idx, cur.ColorID) {
		return dto.SelectionDTO{}, fmt.Errorf("%w: unknown color %q", ErrInvalidArgument, cur.ColorID)
	}
	if cur.SizeID != "" && !hasSize(idx, cur.SizeID) {
		return dto.SelectionDTO{}, fmt.Errorf("%w: unknown size %q", ErrInvalidArgument, cur.SizeID)
	}

	value = strings.TrimSpace(value)
	var next variant.Selection
	switch strings.ToLower(strings.TrimSpace(axis)) {
	case "":
		next = cur.Settle(idx)
	case "color":
		if !hasColor(idx, value) {
			return dto.SelectionDTO{}, fmt.Errorf("%w: unknown color %q", ErrInvalidArgument, value)
		}
		next = cur.ChooseColor(idx, value)
	case "size":
		if !hasSize(idx, value) {
			return dto.SelectionDTO{}, fmt.Errorf("%w: unknown size %q", ErrInvalidArgument, value)
		}
		next = cur.ChooseSize(idx, value)
	default:
		return dto.SelectionDTO{}, fmt.Errorf("%w: axis must be color or size, got %q", ErrInvalidArgument, axis)
	}

	out := dto.SelectionDTO{
		ColorID:       next.ColorID,
		SizeID:        next.SizeID,
		State:         string(next.State),
		UsesProductID: next.UsesProductID,
	}
	if next.Variant != nil {
		vd := q.variantDTO(ctx, *next.Variant)
		out.Variant = &vd
	}
	if next.State == variant.Resolved {
		switch {
		case next.UsesProductID:
			out.TargetID = idx.ProductID()
		case next.Variant != nil:
			out.TargetID = next.Variant.ID
		}
	}
	return out, nil
}

// ============================================================
// internals
// ============================================================

// index loads, validates and builds. Concurrent loads of the same id share one fetch.
func (q *VariantQuery) index(ctx context.Context, productID string) (*variant.Index, error) {
	if q == nil || q.Products == nil {
		return nil, fmt.Errorf("mall.variant: product reader is not configured")
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product id is empty", ErrInvalidArgument)
	}

	// Detached from the starting caller; each caller waits on its own ctx.
	ch := q.loads.DoChan(productID, func() (any, error) {
		timeout := q.LoadTimeout
		if timeout <= 0 {
			timeout = defaultLoadTimeout
		}
		lctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()

		p, err := q.Products.GetDetail(lctx, productID)
		if err != nil {
			return nil, fmt.Errorf("mall.variant: load product %s: %w", productID, err)
		}
		if err := productdom.Validate(p); err != nil {
			q.Log.Warn("product record rejected", zap.String("productId", productID), zap.Error(err))
			return nil, err
		}
		return p, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	idx := q.Builder.ForProduct(res.Val.(productdom.ProductDetail))
	for _, c := range idx.Collisions() {
		q.Log.Warn("variant dropped: duplicate color/size",
			zap.String("productId", productID),
			zap.String("colorId", c.Key.ColorID),
			zap.String("sizeId", c.Key.SizeID),
			zap.String("keptVariantId", c.KeptID),
			zap.String("droppedVariantId", c.Dropped.ID),
		)
	}
	return idx, nil
}

func (q *VariantQuery) photoURL(ctx context.Context, ref string) string {
	if q.Photos == nil || strings.TrimSpace(ref) == "" {
		return ref
	}
	u, err := q.Photos.ResolvePhotoURL(ctx, ref)
	if err != nil {
		q.Log.Warn("photo url resolve failed", zap.String("ref", ref), zap.Error(err))
		return ref
	}
	return u
}

func (q *VariantQuery) colorsDTO(ctx context.Context, in []variant.ColorOption) []dto.ColorOptionDTO {
	out := make([]dto.ColorOptionDTO, 0, len(in))
	for _, c := range in {
		out = append(out, dto.ColorOptionDTO{
			ID:        c.ID,
			Key:       c.Key,
			Name:      c.Name,
			Hex:       c.Hex,
			Image:     q.photoURL(ctx, c.Image),
			Available: c.Available,
		})
	}
	return out
}

func sizesDTO(in []variant.SizeOption) []dto.SizeOptionDTO {
	out := make([]dto.SizeOptionDTO, 0, len(in))
	for _, s := range in {
		out = append(out, dto.SizeOptionDTO{ID: s.ID, Label: s.Label, Available: s.Available})
	}
	return out
}

func (q *VariantQuery) variantDTO(ctx context.Context, v productdom.Variant) dto.VariantDTO {
	var photos []string
	if len(v.Photos) > 0 {
		photos = make([]string, 0, len(v.Photos))
		for _, p := range v.Photos {
			photos = append(photos, q.photoURL(ctx, p))
		}
	}
	return dto.VariantDTO{
		ID:              v.ID,
		SKU:             v.SKU,
		Name:            v.Name,
		BasePrice:       v.BasePrice,
		DiscountPrice:   v.DiscountPrice,
		Price:           v.EffectivePrice(),
		Stock:           v.Stock,
		InStock:         v.InStock(),
		Size:            v.Size,
		Photos:          photos,
		ParentProductID: v.ParentProductID,
	}
}

func hasColor(idx *variant.Index, id string) bool {
	for _, c := range idx.Colors() {
		if c.ID == id {
			return true
		}
	}
	return false
}

func hasSize(idx *variant.Index, id string) bool {
	for _, s := range idx.Sizes() {
		if s.ID == id {
			return true
		}
	}
	return false
}

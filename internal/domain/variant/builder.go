// internal/domain/variant/builder.go
package variant

import (
	"strings"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// Builder turns a ProductDetail into an Index. It is stateless after
// construction and safe to share between goroutines.
type Builder struct {
	extractor ColorKeyExtractor
	hex       HexTable
}

type BuilderOption func(*Builder)

func WithExtractor(e ColorKeyExtractor) BuilderOption {
	return func(b *Builder) {
		if e != nil {
			b.extractor = e
		}
	}
}

func WithHexTable(t HexTable) BuilderOption {
	return func(b *Builder) {
		if t != nil {
			b.hex = t.Clone()
		}
	}
}

// NewBuilder defaults to explicit color attributes with the built-in SKU
// pattern table as fallback.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		extractor: AttributeExtractor{Fallback: NewPatternExtractor(DefaultPatternTable())},
		hex:       DefaultHexTable(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// ForProduct classifies p and builds the matching index.
func (b *Builder) ForProduct(p productdom.ProductDetail) *Index {
	return b.BuildShape(productdom.Classify(p))
}

// BuildShape is total over the two product shapes.
func (b *Builder) BuildShape(s productdom.Shape) *Index {
	switch t := s.(type) {
	case productdom.Standalone:
		return b.AdaptSingleProduct(t.Product)
	case productdom.Variantized:
		return b.build(t.Product.ID, t.Variants)
	default:
		return newIndex("")
	}
}

// Build indexes the working variant list of p (the product itself when it is
// sellable, then p.Variants).
func (b *Builder) Build(p productdom.ProductDetail) *Index {
	return b.build(p.ID, productdom.WorkingVariants(p))
}

func (b *Builder) build(productID string, variants []productdom.Variant) *Index {
	idx := newIndex(productID)
	idx.variantCount = len(variants)

	sizePos := make(map[string]int, len(variants))
	colorPos := make(map[string]int, len(variants))

	for _, v := range variants {
		v = cloneVariant(v)
		idx.prices = append(idx.prices, v.EffectivePrice())

		// sizes: first-seen order, availability OR-accumulated
		if i, ok := sizePos[v.Size]; ok {
			idx.sizes[i].Available = idx.sizes[i].Available || v.Stock > 0
		} else {
			sizePos[v.Size] = len(idx.sizes)
			idx.sizes = append(idx.sizes, SizeOption{
				ID:        v.Size,
				Label:     v.Size,
				Available: v.Stock > 0,
			})
		}

		// colors: bucket by extracted key
		key := b.extractor.ExtractColorKey(v)
		colorID := ColorID(key)
		if i, ok := colorPos[colorID]; ok {
			idx.colors[i].Available = idx.colors[i].Available || v.Stock > 0
		} else {
			colorPos[colorID] = len(idx.colors)
			idx.colors = append(idx.colors, b.colorOption(key, v))
		}
		idx.buckets[colorID] = append(idx.buckets[colorID], v)

		// composite map: first-seen wins
		ck := CompositeKey{ColorID: colorID, SizeID: v.Size}
		if kept, dup := idx.entries[ck]; dup {
			idx.collisions = append(idx.collisions, Collision{Key: ck, KeptID: kept.ID, Dropped: v})
			continue
		}
		idx.entries[ck] = v
		idx.order = append(idx.order, ck)
	}
	return idx
}

// colorOption synthesizes the option from the bucket's first variant.
func (b *Builder) colorOption(key string, first productdom.Variant) ColorOption {
	name := strings.TrimSpace(first.Color.Name)
	if name == "" {
		if key == DefaultColorKey {
			name = "Color " + key
		} else {
			name = key
		}
	}

	hex := strings.TrimSpace(first.Color.Hex)
	if hex == "" {
		hex = b.hex.Lookup(name)
	}

	return ColorOption{
		ID:        ColorID(key),
		Key:       key,
		Name:      name,
		Hex:       hex,
		Image:     first.FirstPhoto(),
		Available: first.Stock > 0,
	}
}

// internal/domain/variant/single.go
package variant

import (
	"strings"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// AdaptSingleProduct builds a degenerate index for a product without a variant
// family: at most one color (only if the product declares one), at most one
// size (only if it declares one), both available iff p.InStock, and an empty
// lookup map. Callers use the product id as the resolved target.
func (b *Builder) AdaptSingleProduct(p productdom.ProductDetail) *Index {
	idx := newIndex(p.ID)
	idx.standalone = true
	idx.inStock = p.InStock
	idx.prices = []int64{p.AsVariant().EffectivePrice()}

	if p.Color != nil && !p.Color.IsZero() {
		// same key and id scheme as AttributeExtractor + Build
		key := strings.TrimSpace(p.Color.ID)
		name := strings.TrimSpace(p.Color.Name)
		if key == "" {
			key = name
		}
		if name == "" {
			name = key
		}
		hex := strings.TrimSpace(p.Color.Hex)
		if hex == "" {
			hex = b.hex.Lookup(name)
		}
		image := ""
		if len(p.Photos) > 0 {
			image = p.Photos[0]
		}
		idx.colors = []ColorOption{{
			ID:        ColorID(key),
			Key:       key,
			Name:      name,
			Hex:       hex,
			Image:     image,
			Available: p.InStock,
		}}
	}

	if size := p.Size; strings.TrimSpace(size) != "" {
		idx.sizes = []SizeOption{{
			ID:        size,
			Label:     size,
			Available: p.InStock,
		}}
	}

	return idx
}

// AdaptSingleProduct uses the built-in hex table.
func AdaptSingleProduct(p productdom.ProductDetail) *Index {
	return NewBuilder().AdaptSingleProduct(p)
}

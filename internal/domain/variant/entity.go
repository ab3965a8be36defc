// internal/domain/variant/entity.go
package variant

import (
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// ==========================
// Options
// ==========================

// ColorOption is one choosable color. Available is derived from the stock of
// the variants in its bucket and is never set independently.
type ColorOption struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Image     string `json:"image,omitempty"`
	Available bool   `json:"available"`
}

// SizeOption uses the size label itself as its id.
type SizeOption struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// CompositeKey addresses the variant lookup.
type CompositeKey struct {
	ColorID string
	SizeID  string
}

// Collision records a variant that was dropped because an earlier variant
// already produced the same composite key.
type Collision struct {
	Key     CompositeKey
	KeptID  string
	Dropped productdom.Variant
}

// ==========================
// Index
// ==========================

// Index is the immutable result of building over one ProductDetail.
// Accessors return copies; a new product load builds a new Index.
type Index struct {
	productID  string
	standalone bool
	inStock    bool

	colors  []ColorOption
	sizes   []SizeOption
	entries map[CompositeKey]productdom.Variant
	order   []CompositeKey
	buckets map[string][]productdom.Variant

	variantCount int
	prices       []int64
	collisions   []Collision
}

func newIndex(productID string) *Index {
	return &Index{
		productID: productID,
		entries:   make(map[CompositeKey]productdom.Variant),
		buckets:   make(map[string][]productdom.Variant),
	}
}

func (x *Index) ProductID() string { return x.productID }

// Standalone reports whether the index was synthesized for a product without
// a variant family. Its lookup map is always empty.
func (x *Index) Standalone() bool { return x.standalone }

func (x *Index) Colors() []ColorOption {
	return append([]ColorOption(nil), x.colors...)
}

func (x *Index) Sizes() []SizeOption {
	return append([]SizeOption(nil), x.sizes...)
}

// Len is the number of composite-key entries.
func (x *Index) Len() int { return len(x.entries) }

// VariantCount is the size of the working variant list the index was built from.
func (x *Index) VariantCount() int { return x.variantCount }

// Keys returns composite keys in first-seen order.
func (x *Index) Keys() []CompositeKey {
	return append([]CompositeKey(nil), x.order...)
}

// Bucket returns the variants grouped under colorID in scan order.
func (x *Index) Bucket(colorID string) []productdom.Variant {
	b := x.buckets[colorID]
	out := make([]productdom.Variant, len(b))
	for i := range b {
		out[i] = cloneVariant(b[i])
	}
	return out
}

func (x *Index) Collisions() []Collision {
	out := make([]Collision, len(x.collisions))
	for i, c := range x.collisions {
		c.Dropped = cloneVariant(c.Dropped)
		out[i] = c
	}
	return out
}

// Lookup is the comma-ok form of Resolve.
func (x *Index) Lookup(colorID, sizeID string) (productdom.Variant, bool) {
	if x == nil {
		return productdom.Variant{}, false
	}
	v, ok := x.entries[CompositeKey{ColorID: colorID, SizeID: sizeID}]
	if !ok {
		return productdom.Variant{}, false
	}
	return cloneVariant(v), true
}

// PriceRange returns the lowest and highest effective price over the
// working variants. ok is false when there are none.
func (x *Index) PriceRange() (lo, hi int64, ok bool) {
	if x == nil || len(x.prices) == 0 {
		return 0, 0, false
	}
	lo, hi = x.prices[0], x.prices[0]
	for _, p := range x.prices[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi, true
}

func cloneVariant(v productdom.Variant) productdom.Variant {
	if v.Photos != nil {
		v.Photos = append([]string(nil), v.Photos...)
	}
	if v.DiscountPrice != nil {
		d := *v.DiscountPrice
		v.DiscountPrice = &d
	}
	return v
}

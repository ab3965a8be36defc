// internal/domain/product/shape.go
package product

// Shape tags a ProductDetail as either a standalone product or a product
// with a variant family. The set of implementations is closed.
type Shape interface {
	Detail() ProductDetail
	isShape()
}

// Standalone is a product sold as itself, without variants.
type Standalone struct {
	Product ProductDetail
}

// Variantized is a product whose purchasable units are its variants.
// Variants is the working list: the product itself first when it is sellable,
// then every entry of ProductDetail.Variants in order.
type Variantized struct {
	Product  ProductDetail
	Variants []Variant
}

func (s Standalone) Detail() ProductDetail  { return s.Product }
func (v Variantized) Detail() ProductDetail { return v.Product }

func (Standalone) isShape()  {}
func (Variantized) isShape() {}

// Classify is total: every ProductDetail maps to exactly one Shape.
func Classify(p ProductDetail) Shape {
	if !p.IsVariant && len(p.Variants) == 0 {
		return Standalone{Product: p}
	}
	return Variantized{Product: p, Variants: WorkingVariants(p)}
}

// WorkingVariants builds the list the variant index is computed over.
func WorkingVariants(p ProductDetail) []Variant {
	out := make([]Variant, 0, len(p.Variants)+1)
	if p.Sellable() {
		out = append(out, p.AsVariant())
	}
	out = append(out, p.Variants...)
	return out
}

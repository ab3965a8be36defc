// internal/application/query/mall/dto/variant_dto.go
package dto

// VariantDataDTO is the response shape for the product page variant picker.
type VariantDataDTO struct {
	ProductID string `json:"productId"`

	// Standalone products have no variant family; the cart target is ProductID.
	Standalone bool `json:"standalone"`

	Colors []ColorOptionDTO `json:"colors"`
	Sizes  []SizeOptionDTO  `json:"sizes"`

	// one entry per (colorId, sizeId) pair backed by a variant, first-seen order
	Variants []VariantEntryDTO `json:"variants"`

	Price *PriceRangeDTO `json:"price,omitempty"`

	// number of variants dropped because their (colorId, sizeId) was already taken
	Collisions int `json:"collisions,omitempty"`
}

type ColorOptionDTO struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Image     string `json:"image,omitempty"`
	Available bool   `json:"available"`
}

type SizeOptionDTO struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

type VariantEntryDTO struct {
	ColorID string     `json:"colorId"`
	SizeID  string     `json:"sizeId"`
	Variant VariantDTO `json:"variant"`
}

type VariantDTO struct {
	ID              string   `json:"id"`
	SKU             string   `json:"sku"`
	Name            string   `json:"name,omitempty"`
	BasePrice       int64    `json:"basePrice"`
	DiscountPrice   *int64   `json:"discountPrice,omitempty"`
	Price           int64    `json:"price"`
	Stock           int      `json:"stock"`
	InStock         bool     `json:"inStock"`
	Size            string   `json:"size"`
	Photos          []string `json:"photos,omitempty"`
	ParentProductID string   `json:"parentProductId,omitempty"`
}

type PriceRangeDTO struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// ResolveDTO answers "which variant is behind this color/size pair".
// Found=false is a normal answer, not an error.
type ResolveDTO struct {
	ProductID string      `json:"productId"`
	ColorID   string      `json:"colorId"`
	SizeID    string      `json:"sizeId"`
	Found     bool        `json:"found"`
	Available bool        `json:"available"`
	Variant   *VariantDTO `json:"variant,omitempty"`
}

type SizesDTO struct {
	ProductID string          `json:"productId"`
	ColorID   string          `json:"colorId"`
	Sizes     []SizeOptionDTO `json:"sizes"`
	First     string          `json:"firstAvailable,omitempty"`
}

type ColorsDTO struct {
	ProductID string           `json:"productId"`
	SizeID    string           `json:"sizeId"`
	Colors    []ColorOptionDTO `json:"colors"`
	First     string           `json:"firstAvailable,omitempty"`
}

// SelectionDTO is the client-held picker state. The server recomputes State
// and Variant; only ColorID and SizeID are read from requests.
type SelectionDTO struct {
	ColorID       string      `json:"colorId,omitempty"`
	SizeID        string      `json:"sizeId,omitempty"`
	State         string      `json:"state,omitempty"`
	Variant       *VariantDTO `json:"variant,omitempty"`
	UsesProductID bool        `json:"usesProductId,omitempty"`

	// TargetID is what goes into the cart: the variant id, or the product id
	// for standalone products. Empty until the selection is resolved.
	TargetID string `json:"targetId,omitempty"`
}

// SelectRequest is the body of POST .../variants/select.
type SelectRequest struct {
	Current SelectionDTO `json:"current"`
	Axis    string       `json:"axis" validate:"omitempty,oneof=color size"`
	Value   string       `json:"value" validate:"required_with=Axis"`
}

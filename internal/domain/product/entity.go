// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
)

var (
	ErrNotFound       = errors.New("product: not found")
	ErrInvalidProduct = errors.New("product: invalid product record")
)

// ==========================
// Types
// ==========================

// Color is an explicit color attribute carried by a variant or a product.
// All fields may be empty; upstream sources that cannot tag colors leave it zero.
type Color struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Hex  string `json:"hex,omitempty" yaml:"hex,omitempty" validate:"omitempty,hexcolor"`
}

func (c Color) IsZero() bool {
	return strings.TrimSpace(c.ID) == "" && strings.TrimSpace(c.Name) == ""
}

// Variant is one purchasable size/color combination.
// Prices are minor units (tenge/cents).
type Variant struct {
	ID              string   `json:"id" yaml:"id" validate:"required"`
	SKU             string   `json:"sku" yaml:"sku" validate:"required"`
	Name            string   `json:"name,omitempty" yaml:"name,omitempty"`
	BasePrice       int64    `json:"basePrice" yaml:"basePrice" validate:"gte=0"`
	DiscountPrice   *int64   `json:"discountPrice,omitempty" yaml:"discountPrice,omitempty" validate:"omitempty,gte=0"`
	Stock           int      `json:"stock" yaml:"stock" validate:"gte=0"`
	Size            string   `json:"size" yaml:"size"`
	Photos          []string `json:"photos,omitempty" yaml:"photos,omitempty"`
	ParentProductID string   `json:"parentProductId,omitempty" yaml:"parentProductId,omitempty"`
	Color           Color    `json:"color,omitempty" yaml:"color,omitempty"`
}

// EffectivePrice returns the discount price when it is set and below the base price.
func (v Variant) EffectivePrice() int64 {
	if v.DiscountPrice != nil && *v.DiscountPrice < v.BasePrice {
		return *v.DiscountPrice
	}
	return v.BasePrice
}

func (v Variant) InStock() bool {
	return v.Stock > 0
}

// FirstPhoto returns the first photo reference or "".
func (v Variant) FirstPhoto() string {
	if len(v.Photos) == 0 {
		return ""
	}
	return v.Photos[0]
}

// ProductDetail is the record supplied by the product-fetch collaborator.
// Non-variant products carry their own color/size/stock/photos.
type ProductDetail struct {
	ID            string    `json:"id" yaml:"id" validate:"required"`
	SKU           string    `json:"sku,omitempty" yaml:"sku,omitempty"`
	Name          string    `json:"name,omitempty" yaml:"name,omitempty"`
	IsVariant     bool      `json:"isVariant" yaml:"isVariant"`
	Color         *Color    `json:"color,omitempty" yaml:"color,omitempty"`
	Size          string    `json:"size,omitempty" yaml:"size,omitempty"`
	Stock         int       `json:"stock" yaml:"stock" validate:"gte=0"`
	InStock       bool      `json:"inStock" yaml:"inStock"`
	BasePrice     int64     `json:"basePrice" yaml:"basePrice" validate:"gte=0"`
	DiscountPrice *int64    `json:"discountPrice,omitempty" yaml:"discountPrice,omitempty" validate:"omitempty,gte=0"`
	Photos        []string  `json:"photos,omitempty" yaml:"photos,omitempty"`
	Variants      []Variant `json:"variants,omitempty" yaml:"variants,omitempty" validate:"dive"`
}

// Sellable reports whether the product itself can be bought as a size,
// independently of its variant family.
func (p ProductDetail) Sellable() bool {
	return !p.IsVariant && strings.TrimSpace(p.Size) != ""
}

// AsVariant synthesizes the Variant that represents the product itself.
// ParentProductID stays empty.
func (p ProductDetail) AsVariant() Variant {
	v := Variant{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		BasePrice:     p.BasePrice,
		DiscountPrice: p.DiscountPrice,
		Stock:         p.Stock,
		Size:          p.Size,
		Photos:        append([]string(nil), p.Photos...),
	}
	if p.Color != nil {
		v.Color = *p.Color
	}
	return v
}

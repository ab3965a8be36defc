// internal/adapters/out/gormdb/models.go
package gormdb

import (
	"strings"
	"time"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// Product maps the products table of the MySQL catalog.
type Product struct {
	ID            string   `gorm:"type:varchar(64);primaryKey"`
	SKU           string   `gorm:"type:varchar(128)"`
	Name          string   `gorm:"type:varchar(255)"`
	IsVariant     bool     `gorm:"not null;default:false"`
	ColorID       string   `gorm:"type:varchar(64)"`
	ColorName     string   `gorm:"type:varchar(128)"`
	ColorHex      string   `gorm:"type:char(7)"`
	Size          string   `gorm:"type:varchar(32)"`
	Stock         int      `gorm:"not null;default:0"`
	InStock       *bool    `gorm:"column:in_stock"`
	BasePrice     int64    `gorm:"not null;default:0"`
	DiscountPrice *int64   `gorm:"column:discount_price"`
	Photos        []string `gorm:"type:json;serializer:json"`

	Variants []Variant `gorm:"foreignKey:ParentProductID;references:ID"`

	CreatedAt time.Time `gorm:"type:datetime(3)"`
	UpdatedAt time.Time `gorm:"type:datetime(3)"`
}

func (Product) TableName() string { return "products" }

// Variant maps the product_variants table.
type Variant struct {
	ID              string   `gorm:"type:varchar(64);primaryKey"`
	ParentProductID string   `gorm:"type:varchar(64);not null;index:ix_product_variants_parent"`
	SKU             string   `gorm:"type:varchar(128);not null"`
	Name            string   `gorm:"type:varchar(255)"`
	ColorID         string   `gorm:"type:varchar(64)"`
	ColorName       string   `gorm:"type:varchar(128)"`
	ColorHex        string   `gorm:"type:char(7)"`
	Size            string   `gorm:"type:varchar(32)"`
	Stock           int      `gorm:"not null;default:0"`
	BasePrice       int64    `gorm:"not null;default:0"`
	DiscountPrice   *int64   `gorm:"column:discount_price"`
	Photos          []string `gorm:"type:json;serializer:json"`
	SortOrder       int      `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"type:datetime(3)"`
	UpdatedAt time.Time `gorm:"type:datetime(3)"`
}

func (Variant) TableName() string { return "product_variants" }

// ToDomain maps the row and its preloaded variants.
func (p Product) ToDomain() productdom.ProductDetail {
	out := productdom.ProductDetail{
		ID:            strings.TrimSpace(p.ID),
		SKU:           strings.TrimSpace(p.SKU),
		Name:          strings.TrimSpace(p.Name),
		IsVariant:     p.IsVariant,
		Size:          p.Size,
		Stock:         p.Stock,
		InStock:       p.Stock > 0,
		BasePrice:     p.BasePrice,
		DiscountPrice: copyInt64(p.DiscountPrice),
		Photos:        trimPhotos(p.Photos),
	}
	if p.InStock != nil {
		out.InStock = *p.InStock
	}
	if c := toColor(p.ColorID, p.ColorName, p.ColorHex); !c.IsZero() || c.Hex != "" {
		out.Color = &c
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, v.ToDomain())
	}
	return out
}

func (v Variant) ToDomain() productdom.Variant {
	return productdom.Variant{
		ID:              strings.TrimSpace(v.ID),
		SKU:             strings.TrimSpace(v.SKU),
		Name:            strings.TrimSpace(v.Name),
		BasePrice:       v.BasePrice,
		DiscountPrice:   copyInt64(v.DiscountPrice),
		Stock:           v.Stock,
		Size:            v.Size,
		Photos:          trimPhotos(v.Photos),
		ParentProductID: strings.TrimSpace(v.ParentProductID),
		Color:           toColor(v.ColorID, v.ColorName, v.ColorHex),
	}
}

func toColor(id, name, hex string) productdom.Color {
	return productdom.Color{
		ID:   strings.TrimSpace(id),
		Name: strings.TrimSpace(name),
		Hex:  strings.TrimSpace(hex),
	}
}

func copyInt64(p *int64) *int64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func trimPhotos(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package firestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

func TestDecodeProduct(t *testing.T) {
	p := decodeProduct("p1", map[string]any{
		"sku":           "DRESS-GYZYL",
		"name":          " Dress ",
		"isVariant":     false,
		"size":          "M",
		"stock":         int64(3),
		"basePrice":     int64(25000),
		"discountPrice": float64(19900),
		"photos":        []any{"a.jpg", "", 7, "b.jpg"},
		"color":         map[string]any{"id": "red", "name": "Red", "hex": "#D32F2F"},
	})

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Dress", p.Name)
	assert.Equal(t, 3, p.Stock)
	assert.True(t, p.InStock, "derived from stock when inStock is absent")
	assert.Equal(t, int64(25000), p.BasePrice)
	require.NotNil(t, p.DiscountPrice)
	assert.Equal(t, int64(19900), *p.DiscountPrice)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.Photos)
	require.NotNil(t, p.Color)
	assert.Equal(t, productdom.Color{ID: "red", Name: "Red", Hex: "#D32F2F"}, *p.Color)
}

func TestDecodeProduct_ExplicitInStockWins(t *testing.T) {
	p := decodeProduct("p", map[string]any{"stock": int64(5), "inStock": false})
	assert.False(t, p.InStock)
	assert.Nil(t, p.Color)
	assert.Nil(t, p.DiscountPrice)
}

func TestDecodeVariant(t *testing.T) {
	v := decodeVariant("v1", map[string]any{
		"sku":             "POLO-GARA-M",
		"size":            "M",
		"stock":           int64(2),
		"basePrice":       int64(15000),
		"photos":          []string{"x.jpg"},
		"parentProductId": "polo",
		"color":           "Black",
	})

	assert.Equal(t, productdom.Variant{
		ID:              "v1",
		SKU:             "POLO-GARA-M",
		Size:            "M",
		Stock:           2,
		BasePrice:       15000,
		Photos:          []string{"x.jpg"},
		ParentProductID: "polo",
		Color:           productdom.Color{Name: "Black"},
	}, v)
}

func TestDecodeColor(t *testing.T) {
	_, ok := decodeColor(nil)
	assert.False(t, ok)

	_, ok = decodeColor(map[string]any{})
	assert.False(t, ok)

	_, ok = decodeColor("  ")
	assert.False(t, ok)

	c, ok := decodeColor(map[string]any{"hex": "#000000"})
	assert.True(t, ok, "hex alone is kept")
	assert.Equal(t, "#000000", c.Hex)
}

func TestGetDetail_Guards(t *testing.T) {
	var r *ProductDetailRepositoryFS
	_, err := r.GetDetail(context.Background(), "p")
	assert.Error(t, err)

	_, err = (&ProductDetailRepositoryFS{}).GetDetail(context.Background(), "p")
	assert.Error(t, err)
}

func TestDecodeVariant_KeepsSizeLabelVerbatim(t *testing.T) {
	v := decodeVariant("v1", map[string]any{"sku": " POLO-M ", "size": " M"})
	assert.Equal(t, "POLO-M", v.SKU)
	assert.Equal(t, " M", v.Size, "sizes dedupe by exact label")

	p := decodeProduct("p1", map[string]any{"size": "M "})
	assert.Equal(t, "M ", p.Size)
}

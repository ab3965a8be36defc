package product_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

func TestClassify(t *testing.T) {
	t.Run("standalone", func(t *testing.T) {
		s := product.Classify(product.ProductDetail{ID: "p", Size: "M"})
		_, ok := s.(product.Standalone)
		assert.True(t, ok)
		assert.Equal(t, "p", s.Detail().ID)
	})

	t.Run("variant family", func(t *testing.T) {
		s := product.Classify(product.ProductDetail{
			ID:       "p",
			Variants: []product.Variant{{ID: "v1", SKU: "A"}},
		})
		vz, ok := s.(product.Variantized)
		require.True(t, ok)
		assert.Len(t, vz.Variants, 1)
	})

	t.Run("product that is itself a variant", func(t *testing.T) {
		s := product.Classify(product.ProductDetail{ID: "p", IsVariant: true, Size: "M"})
		vz, ok := s.(product.Variantized)
		require.True(t, ok)
		assert.Empty(t, vz.Variants, "a variant record is never sellable on its own")
	})
}

func TestWorkingVariants_SellableProductFirst(t *testing.T) {
	p := product.ProductDetail{
		ID:    "p",
		SKU:   "P-GARA",
		Size:  "S",
		Stock: 4,
		Color: &product.Color{Name: "Black"},
		Variants: []product.Variant{
			{ID: "v1", SKU: "P-GARA-M", Size: "M", ParentProductID: "p"},
		},
	}

	got := product.WorkingVariants(p)
	require.Len(t, got, 2)
	assert.Equal(t, "p", got[0].ID)
	assert.Equal(t, "S", got[0].Size)
	assert.Equal(t, 4, got[0].Stock)
	assert.Equal(t, "Black", got[0].Color.Name)
	assert.Empty(t, got[0].ParentProductID)
	assert.Equal(t, "v1", got[1].ID)
}

func TestVariant_EffectivePrice(t *testing.T) {
	lower, higher := int64(80), int64(150)

	assert.Equal(t, int64(100), product.Variant{BasePrice: 100}.EffectivePrice())
	assert.Equal(t, int64(80), product.Variant{BasePrice: 100, DiscountPrice: &lower}.EffectivePrice())
	assert.Equal(t, int64(100), product.Variant{BasePrice: 100, DiscountPrice: &higher}.EffectivePrice())
}

func TestValidate(t *testing.T) {
	ok := product.ProductDetail{
		ID: "p",
		Variants: []product.Variant{
			{ID: "v1", SKU: "P-GARA-M", Size: "M", Stock: 1, Color: product.Color{Hex: "#000000"}},
		},
	}
	require.NoError(t, product.Validate(ok))

	cases := map[string]product.ProductDetail{
		"missing id":        {},
		"negative stock":    {ID: "p", Stock: -1},
		"variant sku":       {ID: "p", Variants: []product.Variant{{ID: "v1"}}},
		"variant stock":     {ID: "p", Variants: []product.Variant{{ID: "v1", SKU: "S", Stock: -2}}},
		"bad hex":           {ID: "p", Variants: []product.Variant{{ID: "v1", SKU: "S", Color: product.Color{Hex: "black"}}}},
		"negative discount": {ID: "p", DiscountPrice: ptr(int64(-5))},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			err := product.Validate(p)
			require.Error(t, err)
			assert.True(t, errors.Is(err, product.ErrInvalidProduct))
		})
	}
}

func ptr[T any](v T) *T { return &v }

package config

import productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"

func productWithSKU(sku string) productdom.ProductDetail {
	return productdom.ProductDetail{
		ID:        "p",
		IsVariant: true,
		Variants: []productdom.Variant{
			{ID: "v", SKU: sku, Size: "S", Stock: 1},
		},
	}
}

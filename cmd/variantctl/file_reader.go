// cmd/variantctl/file_reader.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// fileReader serves one product record decoded from a JSON or YAML file.
type fileReader struct {
	product productdom.ProductDetail
}

func loadProductFile(path string) (*fileReader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p productdom.ProductDetail
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(raw, &p)
	default:
		err = yaml.Unmarshal(raw, &p)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if strings.TrimSpace(p.ID) == "" {
		return nil, fmt.Errorf("%s: product id is empty", path)
	}
	return &fileReader{product: p}, nil
}

func (f *fileReader) GetDetail(_ context.Context, id string) (productdom.ProductDetail, error) {
	if id != f.product.ID {
		return productdom.ProductDetail{}, productdom.ErrNotFound
	}
	return f.product, nil
}

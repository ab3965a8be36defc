// internal/adapters/out/gormdb/product_detail_repository.go
package gormdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// ProductDetailRepository reads the catalog through gorm (MySQL).
type ProductDetailRepository struct {
	db *gorm.DB
}

func NewProductDetailRepository(db *gorm.DB) *ProductDetailRepository {
	return &ProductDetailRepository{db: db}
}

func (r *ProductDetailRepository) GetDetail(ctx context.Context, id string) (productdom.ProductDetail, error) {
	if r == nil || r.db == nil {
		return productdom.ProductDetail{}, errors.New("gormdb: db is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ProductDetail{}, productdom.ErrNotFound
	}

	var p Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return productdom.ProductDetail{}, productdom.ErrNotFound
		}
		return productdom.ProductDetail{}, fmt.Errorf("gormdb: get product %s: %w", id, err)
	}
	return p.ToDomain(), nil
}

// AutoMigrate creates or updates the catalog tables. Used by local tooling.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return errors.New("gormdb: db is nil")
	}
	return db.WithContext(ctx).AutoMigrate(&Product{}, &Variant{})
}

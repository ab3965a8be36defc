// internal/adapters/out/db/product_detail_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// ProductDetailRepositoryPG reads products and product_variants from PostgreSQL.
type ProductDetailRepositoryPG struct {
	DB *sql.DB
}

func NewProductDetailRepositoryPG(db *sql.DB) *ProductDetailRepositoryPG {
	return &ProductDetailRepositoryPG{DB: db}
}

const selectProductSQL = `
SELECT
  id, sku, name, is_variant,
  color_id, color_name, color_hex,
  size, stock, in_stock,
  base_price, discount_price, photos
FROM products
WHERE id = $1`

const selectVariantsSQL = `
SELECT
  id, sku, name,
  base_price, discount_price, stock, size, photos,
  parent_product_id, color_id, color_name, color_hex
FROM product_variants
WHERE parent_product_id = $1
ORDER BY sort_order ASC, id ASC`

// ========================
// Reader impl
// ========================

func (r *ProductDetailRepositoryPG) GetDetail(ctx context.Context, id string) (productdom.ProductDetail, error) {
	if r == nil || r.DB == nil {
		return productdom.ProductDetail{}, errors.New("db: postgres connection is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ProductDetail{}, productdom.ErrNotFound
	}

	p, err := scanProductDetail(r.DB.QueryRowContext(ctx, selectProductSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return productdom.ProductDetail{}, productdom.ErrNotFound
		}
		return productdom.ProductDetail{}, fmt.Errorf("db: get product %s: %w", id, err)
	}

	rows, err := r.DB.QueryContext(ctx, selectVariantsSQL, id)
	if err != nil {
		return productdom.ProductDetail{}, fmt.Errorf("db: list variants of %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return productdom.ProductDetail{}, fmt.Errorf("db: scan variant of %s: %w", id, err)
		}
		p.Variants = append(p.Variants, v)
	}
	if err := rows.Err(); err != nil {
		return productdom.ProductDetail{}, fmt.Errorf("db: list variants of %s: %w", id, err)
	}
	return p, nil
}

// ========================
// scan helpers
// ========================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProductDetail(s rowScanner) (productdom.ProductDetail, error) {
	var (
		p                            productdom.ProductDetail
		sku, name, size              sql.NullString
		colorID, colorName, colorHex sql.NullString
		stock                        sql.NullInt64
		inStock                      sql.NullBool
		basePrice, discountPrice     sql.NullInt64
		photos                       pq.StringArray
	)
	if err := s.Scan(
		&p.ID, &sku, &name, &p.IsVariant,
		&colorID, &colorName, &colorHex,
		&size, &stock, &inStock,
		&basePrice, &discountPrice, &photos,
	); err != nil {
		return productdom.ProductDetail{}, err
	}

	p.SKU = strings.TrimSpace(sku.String)
	p.Name = strings.TrimSpace(name.String)
	p.Size = size.String
	p.Stock = int(stock.Int64)
	if inStock.Valid {
		p.InStock = inStock.Bool
	} else {
		p.InStock = p.Stock > 0
	}
	p.BasePrice = basePrice.Int64
	p.DiscountPrice = nullInt64Ptr(discountPrice)
	p.Photos = cleanPhotos(photos)

	c := productdom.Color{
		ID:   strings.TrimSpace(colorID.String),
		Name: strings.TrimSpace(colorName.String),
		Hex:  strings.TrimSpace(colorHex.String),
	}
	if !c.IsZero() || c.Hex != "" {
		p.Color = &c
	}
	return p, nil
}

func scanVariant(s rowScanner) (productdom.Variant, error) {
	var (
		v                            productdom.Variant
		name, size, parent           sql.NullString
		colorID, colorName, colorHex sql.NullString
		discountPrice                sql.NullInt64
		photos                       pq.StringArray
	)
	if err := s.Scan(
		&v.ID, &v.SKU, &name,
		&v.BasePrice, &discountPrice, &v.Stock, &size, &photos,
		&parent, &colorID, &colorName, &colorHex,
	); err != nil {
		return productdom.Variant{}, err
	}

	v.SKU = strings.TrimSpace(v.SKU)
	v.Name = strings.TrimSpace(name.String)
	v.Size = size.String
	v.DiscountPrice = nullInt64Ptr(discountPrice)
	v.Photos = cleanPhotos(photos)
	v.ParentProductID = strings.TrimSpace(parent.String)
	v.Color = productdom.Color{
		ID:   strings.TrimSpace(colorID.String),
		Name: strings.TrimSpace(colorName.String),
		Hex:  strings.TrimSpace(colorHex.String),
	}
	return v, nil
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func cleanPhotos(in pq.StringArray) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

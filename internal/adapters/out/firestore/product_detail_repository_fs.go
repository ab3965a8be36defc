// internal/adapters/out/firestore/product_detail_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

const (
	defaultProductsCollection = "products"
	defaultVariantsCollection = "product_variants"
)

// ------------------------------------------------------------
// Repository struct
// ------------------------------------------------------------

// ProductDetailRepositoryFS reads products/{id} and its variant family from
// product_variants (parentProductId == id).
type ProductDetailRepositoryFS struct {
	Client *firestore.Client

	ProductsCollection string
	VariantsCollection string
}

func NewProductDetailRepositoryFS(client *firestore.Client) *ProductDetailRepositoryFS {
	return &ProductDetailRepositoryFS{
		Client:             client,
		ProductsCollection: defaultProductsCollection,
		VariantsCollection: defaultVariantsCollection,
	}
}

func (r *ProductDetailRepositoryFS) productsCol() *firestore.CollectionRef {
	name := strings.TrimSpace(r.ProductsCollection)
	if name == "" {
		name = defaultProductsCollection
	}
	return r.Client.Collection(name)
}

func (r *ProductDetailRepositoryFS) variantsCol() *firestore.CollectionRef {
	name := strings.TrimSpace(r.VariantsCollection)
	if name == "" {
		name = defaultVariantsCollection
	}
	return r.Client.Collection(name)
}

// ------------------------------------------------------------
// Reader impl
// ------------------------------------------------------------

func (r *ProductDetailRepositoryFS) GetDetail(ctx context.Context, id string) (productdom.ProductDetail, error) {
	if r == nil || r.Client == nil {
		return productdom.ProductDetail{}, errors.New("firestore client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return productdom.ProductDetail{}, productdom.ErrNotFound
	}

	var (
		doc      map[string]any
		variants []productdom.Variant
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := r.productsCol().Doc(id).Get(gctx)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return productdom.ErrNotFound
			}
			return fmt.Errorf("firestore: get product %s: %w", id, err)
		}
		doc = snap.Data()
		return nil
	})
	g.Go(func() error {
		vs, err := r.listVariants(gctx, id)
		if err != nil {
			return err
		}
		variants = vs
		return nil
	})
	if err := g.Wait(); err != nil {
		return productdom.ProductDetail{}, err
	}
	if doc == nil {
		return productdom.ProductDetail{}, fmt.Errorf("%w: empty product document %s", productdom.ErrInvalidProduct, id)
	}

	p := decodeProduct(id, doc)
	p.Variants = variants
	return p, nil
}

func (r *ProductDetailRepositoryFS) listVariants(ctx context.Context, productID string) ([]productdom.Variant, error) {
	it := r.variantsCol().Where("parentProductId", "==", productID).Documents(ctx)
	defer it.Stop()

	type ordered struct {
		order int64
		v     productdom.Variant
	}
	var rows []ordered
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore: list variants of %s: %w", productID, err)
		}
		data := snap.Data()
		order, _ := asInt64(data["sortOrder"])
		rows = append(rows, ordered{order: order, v: decodeVariant(snap.Ref.ID, data)})
	}

	// sortOrder, then document id
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].order != rows[j].order {
			return rows[i].order < rows[j].order
		}
		return rows[i].v.ID < rows[j].v.ID
	})

	out := make([]productdom.Variant, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.v)
	}
	return out, nil
}

// ------------------------------------------------------------
// decode helpers
// ------------------------------------------------------------

func decodeProduct(id string, data map[string]any) productdom.ProductDetail {
	p := productdom.ProductDetail{
		ID:        id,
		SKU:       asString(data["sku"]),
		Name:      asString(data["name"]),
		IsVariant: asBool(data["isVariant"]),
		Size:      asRawString(data["size"]),
		Photos:    asStrings(data["photos"]),
	}
	if v, ok := asInt64(data["stock"]); ok {
		p.Stock = int(v)
	}
	if v, ok := data["inStock"].(bool); ok {
		p.InStock = v
	} else {
		p.InStock = p.Stock > 0
	}
	p.BasePrice, _ = asInt64(data["basePrice"])
	if v, ok := asInt64(data["discountPrice"]); ok {
		p.DiscountPrice = &v
	}
	if c, ok := decodeColor(data["color"]); ok {
		p.Color = &c
	}
	return p
}

func decodeVariant(id string, data map[string]any) productdom.Variant {
	v := productdom.Variant{
		ID:              id,
		SKU:             asString(data["sku"]),
		Name:            asString(data["name"]),
		Size:            asRawString(data["size"]),
		Photos:          asStrings(data["photos"]),
		ParentProductID: asString(data["parentProductId"]),
	}
	if s, ok := asInt64(data["stock"]); ok {
		v.Stock = int(s)
	}
	v.BasePrice, _ = asInt64(data["basePrice"])
	if d, ok := asInt64(data["discountPrice"]); ok {
		v.DiscountPrice = &d
	}
	if c, ok := decodeColor(data["color"]); ok {
		v.Color = c
	}
	return v
}

// decodeColor accepts {id,name,hex} maps or a bare color name string.
func decodeColor(raw any) (productdom.Color, bool) {
	switch t := raw.(type) {
	case map[string]any:
		c := productdom.Color{
			ID:   asString(t["id"]),
			Name: asString(t["name"]),
			Hex:  asString(t["hex"]),
		}
		if c.IsZero() && c.Hex == "" {
			return productdom.Color{}, false
		}
		return c, true
	case string:
		name := strings.TrimSpace(t)
		if name == "" {
			return productdom.Color{}, false
		}
		return productdom.Color{Name: name}, true
	default:
		return productdom.Color{}, false
	}
}

func asString(v any) string {
	return strings.TrimSpace(asRawString(v))
}

// asRawString keeps the stored bytes; size labels dedupe by exact value.
func asRawString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asStrings(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, x := range t {
			if s := asString(x); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

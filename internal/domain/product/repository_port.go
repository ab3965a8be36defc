// internal/domain/product/repository_port.go
package product

import "context"

// Reader is the read-only port the mall uses to fetch a product with its variants.
// Implementations return ErrNotFound when the product does not exist.
type Reader interface {
	GetDetail(ctx context.Context, id string) (ProductDetail, error)
}

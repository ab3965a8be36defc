// internal/application/query/mall/errors.go
package mall

import "errors"

// ErrInvalidArgument marks caller mistakes (unknown axis, unknown option id).
// Handlers map it to 400; product.ErrNotFound and product.ErrInvalidProduct
// pass through wrapped.
var ErrInvalidArgument = errors.New("invalid_argument")

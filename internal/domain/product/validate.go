// internal/domain/product/validate.go
package product

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a record at the adapter boundary (repository decode, CLI input).
// The variant engine itself accepts any record; this only rejects data that is
// structurally broken (negative stock, variants without SKU, ...).
func Validate(p ProductDetail) error {
	err := validatorInstance().Struct(p)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: id=%q %s", ErrInvalidProduct, p.ID, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidProduct, err)
}

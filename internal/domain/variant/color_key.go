// internal/domain/variant/color_key.go
package variant

import (
	"strings"

	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// ColorKeyExtractor derives the color grouping key of a variant.
// Implementations never fail; an unknown color degrades to DefaultColorKey.
type ColorKeyExtractor interface {
	ExtractColorKey(v productdom.Variant) string
}

// ------------------------------------------------------------
// PatternExtractor: SKU substring heuristic
// ------------------------------------------------------------

type PatternExtractor struct {
	table PatternTable
}

func NewPatternExtractor(table PatternTable) *PatternExtractor {
	return &PatternExtractor{table: table.Clone()}
}

func (e *PatternExtractor) ExtractColorKey(v productdom.Variant) string {
	if e == nil {
		return DefaultColorKey
	}
	return ExtractColorKey(e.table, v.SKU)
}

// ExtractColorKey upper-cases sku and returns the name of the first table row
// whose pattern it contains, or DefaultColorKey.
func ExtractColorKey(table PatternTable, sku string) string {
	upper := strings.ToUpper(sku)
	for _, row := range table {
		if row.Pattern == "" {
			continue
		}
		if strings.Contains(upper, strings.ToUpper(row.Pattern)) {
			return row.Name
		}
	}
	return DefaultColorKey
}

// ------------------------------------------------------------
// AttributeExtractor: explicit color attribute, heuristic fallback
// ------------------------------------------------------------

type AttributeExtractor struct {
	Fallback ColorKeyExtractor
}

func (e AttributeExtractor) ExtractColorKey(v productdom.Variant) string {
	if id := strings.TrimSpace(v.Color.ID); id != "" {
		return id
	}
	if name := strings.TrimSpace(v.Color.Name); name != "" {
		return name
	}
	if e.Fallback == nil {
		return DefaultColorKey
	}
	return e.Fallback.ExtractColorKey(v)
}

// ColorID is the synthetic option id of a color key.
func ColorID(key string) string {
	return "color-" + key
}

// internal/domain/variant/resolve.go
package variant

import (
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// Resolve returns the variant behind (colorID, sizeID), or nil when the
// combination is not purchasable. A nil result is not an error.
func Resolve(idx *Index, colorID, sizeID string) *productdom.Variant {
	v, ok := idx.Lookup(colorID, sizeID)
	if !ok {
		return nil
	}
	return &v
}

// AvailableSizesForColor re-derives every size's availability with colorID fixed.
// Standalone indexes have no lookup entries; their options are returned as built.
func AvailableSizesForColor(idx *Index, colorID string) []SizeOption {
	if idx == nil {
		return nil
	}
	out := idx.Sizes()
	if idx.standalone {
		return out
	}
	for i := range out {
		v, ok := idx.entries[CompositeKey{ColorID: colorID, SizeID: out[i].ID}]
		out[i].Available = ok && v.Stock > 0
	}
	return out
}

// AvailableColorsForSize is the symmetric projection with sizeID fixed.
func AvailableColorsForSize(idx *Index, sizeID string) []ColorOption {
	if idx == nil {
		return nil
	}
	out := idx.Colors()
	if idx.standalone {
		return out
	}
	for i := range out {
		v, ok := idx.entries[CompositeKey{ColorID: out[i].ID, SizeID: sizeID}]
		out[i].Available = ok && v.Stock > 0
	}
	return out
}

// FirstAvailableSize returns the id of the first available option, or "".
func FirstAvailableSize(opts []SizeOption) string {
	for _, o := range opts {
		if o.Available {
			return o.ID
		}
	}
	return ""
}

// FirstAvailableColor returns the id of the first available option, or "".
func FirstAvailableColor(opts []ColorOption) string {
	for _, o := range opts {
		if o.Available {
			return o.ID
		}
	}
	return ""
}

func sizeAvailable(opts []SizeOption, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return o.Available
		}
	}
	return false
}

func colorAvailable(opts []ColorOption, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return o.Available
		}
	}
	return false
}

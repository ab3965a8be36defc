// internal/domain/variant/selection.go
package variant

import (
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
)

// State is the selection lifecycle state.
type State string

const (
	NoSelection State = "none"
	ColorChosen State = "color_chosen"
	SizeChosen  State = "size_chosen"
	Resolved    State = "resolved"
	Unresolved  State = "unresolved"
)

// Selection is the user's partial choice over an Index. Values are immutable;
// ChooseColor/ChooseSize return the next selection.
//
// Resolved means a purchasable variant (stock > 0) backs both choices.
// Unresolved means both axes are chosen but the combination has no variant or
// no stock; Variant is still set when a variant exists so it can be shown
// disabled.
type Selection struct {
	ColorID string              `json:"colorId,omitempty"`
	SizeID  string              `json:"sizeId,omitempty"`
	Variant *productdom.Variant `json:"variant,omitempty"`
	State   State               `json:"state"`

	// UsesProductID is set for standalone products: the cart target is the
	// product itself, not a variant.
	UsesProductID bool `json:"usesProductId,omitempty"`
}

// Begin returns the initial selection for idx. A standalone product without
// any options has nothing to choose and starts settled.
func Begin(idx *Index) Selection {
	return Selection{}.settle(idx)
}

// ChooseColor fixes the color axis. If the current size became unavailable
// for the new color, the first available size is selected instead. When no
// size is available at all the current size is kept and the selection
// settles as Unresolved.
func (s Selection) ChooseColor(idx *Index, colorID string) Selection {
	next := Selection{ColorID: colorID, SizeID: s.SizeID}
	if next.SizeID != "" {
		sizes := AvailableSizesForColor(idx, colorID)
		if !sizeAvailable(sizes, next.SizeID) {
			if first := FirstAvailableSize(sizes); first != "" {
				next.SizeID = first
			}
		}
	}
	return next.settle(idx)
}

// ChooseSize is symmetric to ChooseColor.
func (s Selection) ChooseSize(idx *Index, sizeID string) Selection {
	next := Selection{ColorID: s.ColorID, SizeID: sizeID}
	if next.ColorID != "" {
		colors := AvailableColorsForSize(idx, sizeID)
		if !colorAvailable(colors, next.ColorID) {
			if first := FirstAvailableColor(colors); first != "" {
				next.ColorID = first
			}
		}
	}
	return next.settle(idx)
}

// Settle recomputes State and Variant for the current choices without
// applying auto-advance. Use it to restore a selection received from a client.
func (s Selection) Settle(idx *Index) Selection {
	return Selection{ColorID: s.ColorID, SizeID: s.SizeID}.settle(idx)
}

func (s Selection) settle(idx *Index) Selection {
	s.Variant = nil
	s.UsesProductID = false

	if idx != nil && idx.standalone {
		return s.settleStandalone(idx)
	}

	switch {
	case s.ColorID == "" && s.SizeID == "":
		s.State = NoSelection
	case s.SizeID == "":
		s.State = ColorChosen
	case s.ColorID == "":
		s.State = SizeChosen
	default:
		s.Variant = Resolve(idx, s.ColorID, s.SizeID)
		if s.Variant != nil && s.Variant.Stock > 0 {
			s.State = Resolved
		} else {
			s.State = Unresolved
		}
	}
	return s
}

// settleStandalone only requires the axes the product actually declares.
func (s Selection) settleStandalone(idx *Index) Selection {
	needColor := len(idx.colors) > 0
	needSize := len(idx.sizes) > 0

	colorOK := !needColor || s.ColorID != ""
	sizeOK := !needSize || s.SizeID != ""

	switch {
	case colorOK && sizeOK:
		s.UsesProductID = true
		if idx.inStock &&
			(!needColor || colorAvailable(idx.colors, s.ColorID)) &&
			(!needSize || sizeAvailable(idx.sizes, s.SizeID)) {
			s.State = Resolved
		} else {
			s.State = Unresolved
		}
	case s.ColorID != "":
		s.State = ColorChosen
	case s.SizeID != "":
		s.State = SizeChosen
	default:
		s.State = NoSelection
	}
	return s
}

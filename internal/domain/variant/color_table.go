// internal/domain/variant/color_table.go
package variant

import "strings"

const (
	// DefaultColorKey is the shared bucket for SKUs that match no pattern.
	DefaultColorKey = "default"

	// NeutralHex is returned for color names missing from the hex table.
	NeutralHex = "#CCCCCC"
)

// ColorPattern maps an upper-case SKU fragment to a canonical color name.
type ColorPattern struct {
	Pattern string `yaml:"pattern" json:"pattern"`
	Name    string `yaml:"name" json:"name"`
}

// PatternTable is scanned in order; the first matching row wins.
// Order is the tie-break: short fragments such as "AK" must come after
// longer words that contain them ("KHAKI").
type PatternTable []ColorPattern

// HexTable maps a canonical color name to a display hex code.
type HexTable map[string]string

// DefaultPatternTable returns a fresh copy of the built-in table
// (Turkmen color words used in zen-moda SKUs, then English fallbacks).
func DefaultPatternTable() PatternTable {
	return PatternTable{
		{Pattern: "GARA", Name: "Black"},
		{Pattern: "BLACK", Name: "Black"},
		{Pattern: "GYRMYZY", Name: "Red"},
		{Pattern: "GYZYL", Name: "Red"},
		{Pattern: "RED", Name: "Red"},
		{Pattern: "GOGUMTIL", Name: "Navy"},
		{Pattern: "NAVY", Name: "Navy"},
		{Pattern: "GOK", Name: "Blue"},
		{Pattern: "BLUE", Name: "Blue"},
		{Pattern: "YASYL", Name: "Green"},
		{Pattern: "GREEN", Name: "Green"},
		{Pattern: "SARY", Name: "Yellow"},
		{Pattern: "YELLOW", Name: "Yellow"},
		{Pattern: "MELE", Name: "Brown"},
		{Pattern: "BROWN", Name: "Brown"},
		{Pattern: "BEYGE", Name: "Beige"},
		{Pattern: "BEIGE", Name: "Beige"},
		{Pattern: "KHAKI", Name: "Khaki"},
		{Pattern: "GULGUNE", Name: "Pink"},
		{Pattern: "PINK", Name: "Pink"},
		{Pattern: "BENEVSE", Name: "Purple"},
		{Pattern: "PURPLE", Name: "Purple"},
		{Pattern: "GRAY", Name: "Gray"},
		{Pattern: "GREY", Name: "Gray"},
		{Pattern: "WHITE", Name: "White"},
		{Pattern: "AK", Name: "White"},
	}
}

// DefaultHexTable returns a fresh copy of the built-in hex codes.
func DefaultHexTable() HexTable {
	return HexTable{
		"Black":  "#000000",
		"White":  "#FFFFFF",
		"Red":    "#D32F2F",
		"Navy":   "#1A237E",
		"Blue":   "#1976D2",
		"Green":  "#388E3C",
		"Yellow": "#FBC02D",
		"Brown":  "#6D4C41",
		"Beige":  "#D7CCC8",
		"Khaki":  "#BDB76B",
		"Pink":   "#F48FB1",
		"Purple": "#7B1FA2",
		"Gray":   "#9E9E9E",
	}
}

// Lookup returns the hex code for name, falling back to NeutralHex.
// Exact match first, then case-insensitive.
func (t HexTable) Lookup(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return NeutralHex
	}
	if hex, ok := t[name]; ok {
		return hex
	}
	for k, hex := range t {
		if strings.EqualFold(k, name) {
			return hex
		}
	}
	return NeutralHex
}

// ColorNameToHexCode is Lookup on the default table.
func ColorNameToHexCode(name string) string {
	return DefaultHexTable().Lookup(name)
}

// Clone returns an independent copy of the table.
func (t PatternTable) Clone() PatternTable {
	return append(PatternTable(nil), t...)
}

// Clone returns an independent copy of the table.
func (t HexTable) Clone() HexTable {
	out := make(HexTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

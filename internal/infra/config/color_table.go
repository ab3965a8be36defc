// internal/infra/config/color_table.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/komekovv/zen-moda-client-sub000/internal/domain/variant"
)

// colorTableFile is the on-disk layout:
//
//	patterns:
//	  - pattern: GARA
//	    name: Black
//	hex:
//	  Black: "#000000"
type colorTableFile struct {
	Patterns []variant.ColorPattern `yaml:"patterns"`
	Hex      map[string]string      `yaml:"hex"`
}

// ColorTables are the lookup tables handed to variant.NewBuilder.
type ColorTables struct {
	Patterns variant.PatternTable
	Hex      variant.HexTable
}

// DefaultColorTables returns the built-in tables.
func DefaultColorTables() ColorTables {
	return ColorTables{
		Patterns: variant.DefaultPatternTable(),
		Hex:      variant.DefaultHexTable(),
	}
}

// BuilderOptions turns the tables into builder options.
func (t ColorTables) BuilderOptions() []variant.BuilderOption {
	return []variant.BuilderOption{
		variant.WithExtractor(variant.AttributeExtractor{
			Fallback: variant.NewPatternExtractor(t.Patterns),
		}),
		variant.WithHexTable(t.Hex),
	}
}

// LoadColorTables reads path. An empty path yields the built-in tables.
// A file that only declares one of the sections keeps the default for the other.
func LoadColorTables(path string) (ColorTables, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultColorTables(), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return ColorTables{}, fmt.Errorf("config: read color table %s: %w", path, err)
	}
	return ParseColorTables(raw)
}

// ParseColorTables decodes the YAML layout of LoadColorTables.
func ParseColorTables(raw []byte) (ColorTables, error) {
	var f colorTableFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return DefaultColorTables(), nil
		}
		return ColorTables{}, fmt.Errorf("config: decode color table: %w", err)
	}

	out := DefaultColorTables()
	if len(f.Patterns) > 0 {
		patterns := make(variant.PatternTable, 0, len(f.Patterns))
		for i, row := range f.Patterns {
			p := strings.ToUpper(strings.TrimSpace(row.Pattern))
			n := strings.TrimSpace(row.Name)
			if p == "" || n == "" {
				return ColorTables{}, fmt.Errorf("config: color table patterns[%d]: pattern and name are required", i)
			}
			patterns = append(patterns, variant.ColorPattern{Pattern: p, Name: n})
		}
		out.Patterns = patterns
	}
	if len(f.Hex) > 0 {
		hex := make(variant.HexTable, len(f.Hex))
		for name, code := range f.Hex {
			code = strings.TrimSpace(code)
			if !isHexCode(code) {
				return ColorTables{}, fmt.Errorf("config: color table hex[%s]: %q is not a #RRGGBB code", name, code)
			}
			hex[strings.TrimSpace(name)] = strings.ToUpper(code)
		}
		out.Hex = hex
	}
	return out, nil
}

func isHexCode(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

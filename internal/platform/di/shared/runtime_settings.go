// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"fmt"
	"strings"
	"time"

	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
)

// RuntimeSettings is config-resolved runtime settings (normalized once).
// It contains only values, no external clients.
type RuntimeSettings struct {
	ProductStore string

	PhotoBucket   string
	SignPhotoURLs bool
	SignedURLTTL  time.Duration

	ColorTables appcfg.ColorTables
}

// ResolveRuntimeSettings normalizes cfg and loads the color tables.
// Warnings are returned so callers decide how to surface them.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	s := RuntimeSettings{
		ProductStore:  strings.ToLower(strings.TrimSpace(cfg.ProductStore)),
		PhotoBucket:   strings.TrimSpace(cfg.PhotoBucket),
		SignPhotoURLs: cfg.PhotoSignURLs,
		SignedURLTTL:  cfg.PhotoSignedTTL,
	}

	if s.PhotoBucket == "" {
		warns = append(warns, "PHOTO_BUCKET is empty (relative photo paths use the default bucket)")
	}
	if s.SignPhotoURLs && s.SignedURLTTL <= 0 {
		return RuntimeSettings{}, nil, fmt.Errorf("shared.runtime_settings: PHOTO_SIGNED_URL_TTL must be positive, got %s", s.SignedURLTTL)
	}

	tables, err := appcfg.LoadColorTables(cfg.ColorTableFile)
	if err != nil {
		return RuntimeSettings{}, nil, fmt.Errorf("shared.runtime_settings: %w", err)
	}
	s.ColorTables = tables

	return s, warns, nil
}

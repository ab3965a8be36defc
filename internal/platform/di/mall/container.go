// internal/platform/di/mall/container.go
package mall

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	mallquery "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall"
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
	"github.com/komekovv/zen-moda-client-sub000/internal/domain/variant"
	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
	shared "github.com/komekovv/zen-moda-client-sub000/internal/platform/di/shared"
)

// Container is the mall DI container.
type Container struct {
	Infra *shared.Infra
	Log   *zap.Logger

	ProductReader productdom.Reader
	Photos        mallquery.PhotoURLResolver
	Builder       *variant.Builder

	VariantQ *mallquery.VariantQuery
}

// NewContainer opens shared infra for cfg and wires the mall query layer.
func NewContainer(ctx context.Context, cfg *appcfg.Config, log *zap.Logger) (*Container, error) {
	infra, err := shared.NewInfra(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	c, err := NewContainerWithInfra(infra, log)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	return c, nil
}

// NewContainerWithInfra wires the container on top of an existing Infra.
func NewContainerWithInfra(infra *shared.Infra, log *zap.Logger) (*Container, error) {
	if infra == nil {
		return nil, errors.New("di.mall: infra is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	reader, err := buildProductReader(infra)
	if err != nil {
		return nil, err
	}
	photos, err := buildPhotoURLResolver(infra)
	if err != nil {
		return nil, fmt.Errorf("di.mall: photo resolver: %w", err)
	}
	builder := variant.NewBuilder(infra.Settings.ColorTables.BuilderOptions()...)

	c := &Container{
		Infra:         infra,
		Log:           log,
		ProductReader: reader,
		Photos:        photos,
		Builder:       builder,
	}
	c.VariantQ = mallquery.NewVariantQuery(reader, builder,
		mallquery.WithPhotoURLResolver(photos),
		mallquery.WithLogger(log),
	)

	log.Info("mall container wired",
		zap.String("store", infra.Settings.ProductStore),
		zap.Bool("signedPhotos", infra.Settings.SignPhotoURLs),
	)
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	return c.Infra.Close()
}

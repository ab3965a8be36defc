// internal/platform/di/mall/wiring_policy.go
package mall

import (
	"errors"
	"fmt"

	dbout "github.com/komekovv/zen-moda-client-sub000/internal/adapters/out/db"
	fsout "github.com/komekovv/zen-moda-client-sub000/internal/adapters/out/firestore"
	gcsout "github.com/komekovv/zen-moda-client-sub000/internal/adapters/out/gcs"
	gormout "github.com/komekovv/zen-moda-client-sub000/internal/adapters/out/gormdb"
	mallquery "github.com/komekovv/zen-moda-client-sub000/internal/application/query/mall"
	productdom "github.com/komekovv/zen-moda-client-sub000/internal/domain/product"
	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
	shared "github.com/komekovv/zen-moda-client-sub000/internal/platform/di/shared"
)

// wiring_policy.go decides which adapters back the mall container,
// based on runtime settings and the clients Infra opened.

var errWiringNilInfra = errors.New("di.mall: wiring policy infra is nil")

// buildProductReader picks the reader for PRODUCT_STORE.
// The matching client must have been opened by shared.Infra.
func buildProductReader(infra *shared.Infra) (productdom.Reader, error) {
	if infra == nil {
		return nil, errWiringNilInfra
	}

	switch store := infra.Settings.ProductStore; store {
	case appcfg.StoreFirestore:
		if infra.Firestore == nil || infra.Firestore.Client == nil {
			return nil, errors.New("di.mall: firestore client is nil")
		}
		return fsout.NewProductDetailRepositoryFS(infra.Firestore.Client), nil
	case appcfg.StorePostgres:
		if infra.SQL == nil || infra.SQL.Client == nil {
			return nil, errors.New("di.mall: postgres connection is nil")
		}
		return dbout.NewProductDetailRepositoryPG(infra.SQL.Client), nil
	case appcfg.StoreMySQL:
		if infra.Gorm == nil {
			return nil, errors.New("di.mall: mysql connection is nil")
		}
		return gormout.NewProductDetailRepository(infra.Gorm), nil
	default:
		return nil, fmt.Errorf("di.mall: unknown product store %q", store)
	}
}

// buildPhotoURLResolver returns a signing resolver when signing is enabled
// and a public-URL resolver otherwise.
func buildPhotoURLResolver(infra *shared.Infra) (mallquery.PhotoURLResolver, error) {
	if infra == nil {
		return nil, errWiringNilInfra
	}
	s := infra.Settings
	if !s.SignPhotoURLs {
		return gcsout.NewPhotoURLResolver(s.PhotoBucket), nil
	}
	r, err := gcsout.NewSignedPhotoURLResolver(infra.GCS, s.PhotoBucket, s.SignedURLTTL)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// internal/platform/di/shared/infra.go
package shared

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
	"github.com/komekovv/zen-moda-client-sub000/internal/infra/database"
	firestoreinfra "github.com/komekovv/zen-moda-client-sub000/internal/infra/firestore"
	"github.com/komekovv/zen-moda-client-sub000/internal/infra/secret"
)

// Infra is shared runtime infrastructure for DI.
// It owns external clients and closes them.
//
// IMPORTANT:
// Infra must NOT depend on mall routers, handlers, or queries.
type Infra struct {
	Config    *appcfg.Config
	Log       *zap.Logger
	ProjectID string
	Settings  RuntimeSettings

	// Clients (owned; Close-managed). Only the ones the store needs are set.
	Firestore     *firestoreinfra.ClientWrapper
	GCS           *storage.Client
	SecretManager *secretmanager.Client
	Secrets       *secret.Accessor
	SQL           *database.DB
	Gorm          *gorm.DB
}

// NewInfra initializes shared infra for cfg.
// The configured product store and photo signing are strict (return error).
// Secret Manager is best-effort unless DB_PASSWORD_SECRET is set.
func NewInfra(ctx context.Context, cfg *appcfg.Config, log *zap.Logger) (*Infra, error) {
	if cfg == nil {
		return nil, errors.New("shared.infra: config is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("shared.infra")

	settings, warns, err := ResolveRuntimeSettings(cfg)
	if err != nil {
		return nil, err
	}
	for _, w := range warns {
		log.Warn(w)
	}

	inf := &Infra{
		Config:    cfg,
		Log:       log,
		ProjectID: cfg.GetFirestoreProjectID(),
		Settings:  settings,
	}

	credFile := cfg.CredentialsFile()
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Info("using credentials file for GCP clients", zap.String("file", redactPath(credFile)))
	} else {
		log.Info("using application default credentials")
	}

	// 1) Secret Manager
	if sm, err := secretmanager.NewClient(ctx, clientOpts...); err != nil {
		if strings.TrimSpace(cfg.DBPasswordSecret) != "" {
			return nil, fmt.Errorf("shared.infra: secretmanager.NewClient failed: %w", err)
		}
		log.Warn("secretmanager unavailable", zap.Error(err))
	} else {
		inf.SecretManager = sm
		inf.Secrets = secret.NewAccessor(sm, inf.ProjectID)
	}

	// 2) Product store
	if err := inf.openStore(ctx, clientOpts); err != nil {
		_ = inf.Close()
		return nil, err
	}

	// 3) GCS, only for signed photo URLs
	if settings.SignPhotoURLs {
		gcsClient, err := storage.NewClient(ctx, clientOpts...)
		if err != nil {
			_ = inf.Close()
			return nil, fmt.Errorf("shared.infra: storage.NewClient failed: %w", err)
		}
		inf.GCS = gcsClient
		log.Info("gcs storage client initialized", zap.String("bucket", settings.PhotoBucket))
	}

	return inf, nil
}

func (i *Infra) openStore(ctx context.Context, clientOpts []option.ClientOption) error {
	cfg := i.Config
	switch i.Settings.ProductStore {
	case appcfg.StoreFirestore:
		if i.ProjectID == "" {
			return errors.New("shared.infra: projectID is empty (set FIRESTORE_PROJECT_ID or GOOGLE_CLOUD_PROJECT)")
		}
		cw, err := firestoreinfra.NewClient(ctx, i.Log, i.ProjectID, "", clientOpts...)
		if err != nil {
			return fmt.Errorf("shared.infra: firestore (project=%s): %w", i.ProjectID, err)
		}
		i.Firestore = cw
		return nil

	case appcfg.StorePostgres, appcfg.StoreMySQL:
		password, err := i.dbPassword(ctx)
		if err != nil {
			return err
		}
		p := database.Params{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: password,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		}
		if i.Settings.ProductStore == appcfg.StoreMySQL {
			gdb, err := database.NewGormMySQL(ctx, i.Log, p)
			if err != nil {
				return fmt.Errorf("shared.infra: mysql: %w", err)
			}
			i.Gorm = gdb
			return nil
		}
		db, err := database.NewConnection(ctx, i.Log, p)
		if err != nil {
			return fmt.Errorf("shared.infra: postgres: %w", err)
		}
		i.SQL = db
		return nil

	default:
		return fmt.Errorf("shared.infra: unknown product store %q", i.Settings.ProductStore)
	}
}

// dbPassword prefers DB_PASSWORD_SECRET over DB_PASSWORD.
func (i *Infra) dbPassword(ctx context.Context) (string, error) {
	id := strings.TrimSpace(i.Config.DBPasswordSecret)
	if id == "" {
		return i.Config.DBPassword, nil
	}
	if i.Secrets == nil {
		return "", fmt.Errorf("shared.infra: DB_PASSWORD_SECRET=%s but secret manager is not configured", id)
	}
	pw, err := i.Secrets.Access(ctx, id)
	if err != nil {
		return "", fmt.Errorf("shared.infra: db password: %w", err)
	}
	return pw, nil
}

func (i *Infra) Close() error {
	if i == nil {
		return nil
	}
	var errs []error
	if i.Firestore != nil {
		errs = append(errs, i.Firestore.Close())
	}
	if i.GCS != nil {
		errs = append(errs, i.GCS.Close())
	}
	if i.SecretManager != nil {
		errs = append(errs, i.SecretManager.Close())
	}
	if i.SQL != nil {
		errs = append(errs, i.SQL.Close())
	}
	if i.Gorm != nil {
		errs = append(errs, database.CloseGorm(i.Gorm))
	}
	return errors.Join(errs...)
}

// redactPath keeps only the last path segment.
func redactPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***/" + last
}

// internal/infra/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	defaultPort         = "8080"
	defaultGCPProjectID = "zen-moda-dev"
	defaultDBHost       = "127.0.0.1"
	defaultDBName       = "zenmoda"
	defaultDBSSLMode    = "disable"
	defaultPhotoBucket  = "zen-moda-product-photos"
	defaultCORSOrigin   = "https://zen-moda.web.app"
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"
)

// Product stores the mall service can read ProductDetail records from.
const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMySQL     = "mysql"
)

// Config holds the environment settings of the mall service and variantctl.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	GCPProjectID             string `env:"GCP_PROJECT_ID" envDefault:"zen-moda-dev"`
	GoogleCloudProject       string `env:"GOOGLE_CLOUD_PROJECT"`
	GCPCreds                 string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirestoreProjectID       string `env:"FIRESTORE_PROJECT_ID"`
	FirestoreCredentialsFile string `env:"FIRESTORE_CREDENTIALS_FILE"`

	// firestore | postgres | mysql
	ProductStore string `env:"PRODUCT_STORE" envDefault:"firestore"`

	// PostgreSQL / MySQL
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	DBPort     string `env:"DB_PORT"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"zenmoda"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	// Secret Manager secret id; overrides DB_PASSWORD when set
	DBPasswordSecret string `env:"DB_PASSWORD_SECRET"`

	// Product photos
	PhotoBucket    string        `env:"PHOTO_BUCKET" envDefault:"zen-moda-product-photos"`
	PhotoSignURLs  bool          `env:"PHOTO_SIGN_URLS" envDefault:"false"`
	PhotoSignedTTL time.Duration `env:"PHOTO_SIGNED_URL_TTL" envDefault:"15m"`

	// YAML file with pattern/hex tables; built-in tables when empty
	ColorTableFile string `env:"COLOR_TABLE_FILE"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"https://zen-moda.web.app"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads .env (if present) and parses the environment into Config.
func Load() (*Config, error) {
	// .env is optional; Cloud Run uses real env vars
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envDefault only covers unset variables; a set-but-blank value (empty line
// in .env, empty Cloud Run var) falls back here.
func (c *Config) normalize() {
	c.ProductStore = strings.ToLower(strings.TrimSpace(c.ProductStore))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))

	orDefault(&c.Port, defaultPort)
	orDefault(&c.GCPProjectID, defaultGCPProjectID)
	orDefault(&c.ProductStore, StoreFirestore)
	orDefault(&c.DBHost, defaultDBHost)
	orDefault(&c.DBName, defaultDBName)
	orDefault(&c.DBSSLMode, defaultDBSSLMode)
	orDefault(&c.PhotoBucket, defaultPhotoBucket)
	orDefault(&c.CORSOrigin, defaultCORSOrigin)
	orDefault(&c.LogLevel, defaultLogLevel)
	orDefault(&c.LogFormat, defaultLogFormat)

	if strings.TrimSpace(c.DBPort) == "" {
		switch c.ProductStore {
		case StoreMySQL:
			c.DBPort = "3306"
		default:
			c.DBPort = "5432"
		}
	}
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.ProductStore {
	case StoreFirestore, StorePostgres, StoreMySQL:
	default:
		return fmt.Errorf("config: unknown PRODUCT_STORE %q (want firestore|postgres|mysql)", c.ProductStore)
	}
	if c.PhotoSignURLs && c.PhotoSignedTTL <= 0 {
		return fmt.Errorf("config: PHOTO_SIGNED_URL_TTL must be positive when PHOTO_SIGN_URLS is set")
	}
	return nil
}

// GetFirestoreProjectID resolves FIRESTORE_PROJECT_ID -> GOOGLE_CLOUD_PROJECT -> GCP_PROJECT_ID.
func (c *Config) GetFirestoreProjectID() string {
	for _, v := range []string{c.FirestoreProjectID, c.GoogleCloudProject, c.GCPProjectID} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// CredentialsFile returns the explicit credentials file, or "" for ADC.
func (c *Config) CredentialsFile() string {
	if s := strings.TrimSpace(c.FirestoreCredentialsFile); s != "" {
		return s
	}
	return strings.TrimSpace(c.GCPCreds)
}

// UsesSQL reports whether the configured store needs a SQL connection.
func (c *Config) UsesSQL() bool {
	return c.ProductStore == StorePostgres || c.ProductStore == StoreMySQL
}

func orDefault(v *string, def string) {
	if strings.TrimSpace(*v) == "" {
		*v = def
		return
	}
	*v = strings.TrimSpace(*v)
}

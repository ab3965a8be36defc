// internal/infra/database/connection.go
package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Params are the connection settings shared by both SQL stores.
type Params struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type DB struct {
	Client *sql.DB
}

// PostgresDSN builds a lib/pq keyword/value DSN.
func PostgresDSN(p Params) string {
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(p.Host), quoteDSN(p.Port), quoteDSN(p.User), quoteDSN(p.Password), quoteDSN(p.DBName), sslmode)
}

// MySQLDSN builds a go-sql-driver DSN with parseTime enabled.
func MySQLDSN(p Params) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		p.User, url.QueryEscape(p.Password), p.Host, p.Port, p.DBName)
}

// NewConnection opens PostgreSQL through lib/pq and pings it.
func NewConnection(ctx context.Context, log *zap.Logger, p Params) (*DB, error) {
	connector, err := pq.NewConnector(PostgresDSN(p))
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres DSN: %w", err)
	}
	db := sql.OpenDB(connector)
	tunePool(db)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	if log != nil {
		log.Info("connected to PostgreSQL", zap.String("host", p.Host), zap.String("db", p.DBName))
	}
	return &DB{Client: db}, nil
}

// NewGormMySQL opens MySQL through gorm and pings the underlying pool.
func NewGormMySQL(ctx context.Context, log *zap.Logger, p Params) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(MySQLDSN(p)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open mysql: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get mysql pool: %w", err)
	}
	tunePool(sqlDB)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping mysql: %w", err)
	}

	if log != nil {
		log.Info("connected to MySQL", zap.String("host", p.Host), zap.String("db", p.DBName))
	}
	return gdb, nil
}

// CloseGorm closes the pool behind gdb.
func CloseGorm(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func tunePool(db *sql.DB) {
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
}

// Graceful shutdown
func (d *DB) Close() error {
	if d == nil || d.Client == nil {
		return nil
	}
	return d.Client.Close()
}

// quoteDSN quotes a keyword/value DSN value when it contains spaces or quotes.
func quoteDSN(v string) string {
	if v == "" {
		return "''"
	}
	needs := false
	for _, r := range v {
		if r == ' ' || r == '\'' || r == '\\' {
			needs = true
			break
		}
	}
	if !needs {
		return v
	}
	out := make([]rune, 0, len(v)+2)
	out = append(out, '\'')
	for _, r := range v {
		if r == '\'' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(append(out, '\''))
}

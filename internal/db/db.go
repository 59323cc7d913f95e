package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

var (
	ErrConnectFailed   = errors.New("database connect failed")
	ErrMigrationFailed = errors.New("database migration failed")
)

// DefaultMaxConns covers the ingester, the relay and a few concurrent API
// requests.
const DefaultMaxConns = 4

type Config struct {
	ConnString     string
	MigrationsPath string
	MaxConns       int32
}

// DB is the sensor state store and event history.
type DB struct {
	connString     string
	migrationsPath string
	pool           *pgxpool.Pool
}

func (db *DB) Migrate(ctx context.Context) error {
	return Migrate(ctx, Config{ConnString: db.connString, MigrationsPath: db.migrationsPath})
}

// Migrate applies every pending migration without opening a pool.
func Migrate(ctx context.Context, cfg Config) error {
	const fn = "DB:Migrate"
	slog.InfoContext(ctx, "Running database migrations...", "path", cfg.MigrationsPath)
	m, err := migrate.New("file://"+cfg.MigrationsPath, cfg.ConnString)
	if err != nil {
		return fmt.Errorf("%s:%w:%w", fn, ErrMigrationFailed, err)
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s:%w:%w", fn, ErrMigrationFailed, err)
	}
	version, dirty, err := m.Version()
	if err == nil {
		slog.InfoContext(ctx, "Database schema ready", "version", version, "dirty", dirty)
	}
	return nil
}

// Init connects the pool and brings the schema up to date.
func Init(ctx context.Context, cfg Config) (*DB, error) {
	const fn = "DB:Init"
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrConnectFailed, err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	if poolCfg.MaxConns <= 0 {
		poolCfg.MaxConns = DefaultMaxConns
	}
	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrConnectFailed, err)
	}

	db := &DB{
		pool:           pool,
		connString:     cfg.ConnString,
		migrationsPath: cfg.MigrationsPath,
	}
	if err := db.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return db, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	db.pool.Close()
}

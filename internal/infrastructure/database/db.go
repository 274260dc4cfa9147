package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Supported values for the database_driver setting.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DB struct {
	*sqlx.DB
	driver string
}

// Options tunes how Open establishes the pool.
type Options struct {
	// ConnectRetries is how many extra ping attempts are made before giving up.
	ConnectRetries uint64
	// RetryBase is the first backoff interval; it doubles on every attempt.
	RetryBase time.Duration
}

// Open connects to the configured database and verifies the connection.
// Only the initial ping is retried; queries issued later fail fast.
func Open(ctx context.Context, driver, dsn string, opts Options) (*DB, error) {
	sqlDriver, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if opts.RetryBase <= 0 {
		opts.RetryBase = 200 * time.Millisecond
	}
	backoff := retry.WithMaxRetries(opts.ConnectRetries, retry.NewExponential(opts.RetryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if err := configureSQLite(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &DB{DB: db, driver: driver}, nil
}

// New wraps an already opened *sql.DB. sqlDriver is the database/sql driver
// name ("pgx" or "sqlite") and decides the bind variable style.
func New(db *sql.DB, sqlDriver string) *DB {
	driver := DriverPostgres
	if sqlDriver == "sqlite" {
		driver = DriverSQLite
	}
	return &DB{DB: sqlx.NewDb(db, sqlDriver), driver: driver}
}

func (db *DB) Driver() string {
	return db.driver
}

func (db *DB) Close() error {
	return db.DB.Close()
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return "pgx", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", driver)
	}
}

func configureSQLite(ctx context.Context, db *sqlx.DB) error {
	// A single connection serialises writers and keeps ":memory:" databases
	// shared across every query.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency (allows concurrent reads/writes)
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

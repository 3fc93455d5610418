package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jjenkins/hansard/internal/config"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// QueryObserver receives the outcome of every query issued through a DB
type QueryObserver interface {
	ObserveQuery(operation string, elapsed time.Duration, err error)
}

// DB is the shared connection pool plus the SQL dialect of its driver
type DB struct {
	sql      *sql.DB
	dialect  Dialect
	observer QueryObserver
}

// NewDB opens the pool described by cfg and verifies connectivity
func NewDB(cfg config.Config) (*DB, error) {
	db, err := Open(cfg.Driver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	db.sql.SetMaxOpenConns(cfg.MaxOpenConns)
	db.sql.SetMaxIdleConns(cfg.MaxIdleConns)
	db.sql.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Open opens a pool for the given driver ("postgres" or "sqlite") and pings it
func Open(driver, dsn string) (*DB, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sql: sqlDB, dialect: dialect}, nil
}

// SetObserver installs an observer for query timings and failures
func (db *DB) SetObserver(o QueryObserver) {
	db.observer = o
}

// Exec runs a statement outside the read path. Only fixtures and tooling use it.
func (db *DB) Exec(ctx context.Context, query string, args ...any) error {
	_, err := db.sql.ExecContext(ctx, query, args...)
	return err
}

// Stats exposes pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.sql.Stats()
}

// Close closes the pool
func (db *DB) Close() error {
	if db == nil || db.sql == nil {
		return nil
	}
	return db.sql.Close()
}

func (db *DB) query(ctx context.Context, op, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.sql.QueryContext(ctx, query, args...)
	db.observe(op, start, err)
	return rows, err
}

func (db *DB) queryRow(ctx context.Context, op, query string, args ...any) *row {
	return &row{db: db, op: op, start: time.Now(), row: db.sql.QueryRowContext(ctx, query, args...)}
}

func (db *DB) observe(op string, start time.Time, err error) {
	if db.observer == nil {
		return
	}
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
	}
	db.observer.ObserveQuery(op, time.Since(start), err)
}

// row defers the observation until Scan, where single-row errors surface
type row struct {
	db    *DB
	op    string
	start time.Time
	row   *sql.Row
}

func (r *row) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.db.observe(r.op, r.start, err)
	return err
}

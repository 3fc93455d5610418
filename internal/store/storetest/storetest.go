// Package storetest opens seeded SQLite databases for tests.
package storetest

import (
	"context"
	_ "embed"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jjenkins/hansard/internal/config"
	"github.com/jjenkins/hansard/internal/store"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/schema.sql
var schema string

//go:embed testdata/fixtures.sql
var fixtures string

// Open creates a SQLite database in a temp dir, loads the schema and the
// fixture sittings, and closes it when the test ends
func Open(t testing.TB) *store.DB {
	t.Helper()

	db := OpenEmpty(t)
	Exec(t, db, fixtures)
	return db
}

// OpenEmpty creates a SQLite database with the schema but no rows
func OpenEmpty(t testing.TB) *store.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hansard.db")
	db, err := store.Open(config.DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	Exec(t, db, schema)
	return db
}

// Exec runs each semicolon-terminated statement of script in order
func Exec(t testing.TB, db *store.DB, script string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, stmt := range strings.Split(script, ";\n") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		require.NoError(t, db.Exec(ctx, stmt), "statement: %s", stmt)
	}
}

// Observer records the operation name of every query issued through a DB
type Observer struct {
	mu  sync.Mutex
	ops []string
}

// ObserveQuery implements store.QueryObserver
func (o *Observer) ObserveQuery(operation string, _ time.Duration, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = append(o.ops, operation)
}

// Ops returns the operations observed so far
func (o *Observer) Ops() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.ops...)
}

// Reset forgets observed operations
func (o *Observer) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ops = nil
}

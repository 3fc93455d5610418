package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jjenkins/hansard/internal/config"
)

// Dialect captures the SQL differences between the supported drivers
type Dialect string

const (
	Postgres Dialect = config.DriverPostgres
	SQLite   Dialect = config.DriverSQLite
)

func dialectFor(driver string) (Dialect, error) {
	switch Dialect(driver) {
	case Postgres, SQLite:
		return Dialect(driver), nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}

// Placeholder returns the bind marker for the n-th argument (1-based)
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// containsFold matches col case-insensitively against a %pattern% bind
func (d Dialect) containsFold(col, ph string) string {
	if d == Postgres {
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, ph)
	}
	return fmt.Sprintf(`%s LIKE %s ESCAPE '\'`, col, ph)
}

// textSearch matches col against the bind produced by textSearchArg. Postgres
// uses the english full-text configuration; SQLite falls back to substring.
func (d Dialect) textSearch(col, ph string) string {
	if d == Postgres {
		return fmt.Sprintf(`to_tsvector('english', COALESCE(%s, '')) @@ plainto_tsquery('english', %s)`, col, ph)
	}
	return fmt.Sprintf(`COALESCE(%s, '') LIKE %s ESCAPE '\'`, col, ph)
}

func (d Dialect) textSearchArg(search string) any {
	if d == Postgres {
		return search
	}
	return likePattern(search)
}

// likePattern wraps s in % after escaping LIKE metacharacters
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

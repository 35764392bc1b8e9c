package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect describes the SQL flavour behind a connection.
type Dialect struct {
	name          string
	driverName    string
	gooseDialect  string
	migrationsDir string
	// orderColumn yields insertion order for SELECTs.
	orderColumn string
	// numbered placeholders ($1, $2, ...) instead of '?'
	numbered bool
}

var (
	// Postgres is the PostgreSQL dialect served by the pgx stdlib driver.
	Postgres = Dialect{
		name:          "postgres",
		driverName:    "pgx",
		gooseDialect:  "postgres",
		migrationsDir: "migrations/postgres",
		orderColumn:   "seq",
		numbered:      true,
	}

	// SQLite is the SQLite dialect served by modernc.org/sqlite.
	SQLite = Dialect{
		name:          "sqlite",
		driverName:    "sqlite",
		gooseDialect:  "sqlite3",
		migrationsDir: "migrations/sqlite",
		orderColumn:   "rowid",
	}
)

// DialectFor returns the dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case Postgres.name:
		return Postgres, nil
	case SQLite.name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Name returns the driver name used in configuration.
func (d Dialect) Name() string {
	return d.name
}

// Rebind rewrites '?' placeholders into the dialect's native form.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

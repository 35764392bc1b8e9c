package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// sqlitePragmas enables foreign keys and waits on locked databases.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Open connects to the database at url, configures the pool and verifies the
// connection with a ping.
func Open(ctx context.Context, d Dialect, url string) (*sql.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database url is empty")
	}

	dsn := url
	if d.name == SQLite.name {
		dsn = sqliteDSN(url)
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if d.name == SQLite.name {
		// SQLite serialises writers; a single connection avoids SQLITE_BUSY
		// between pooled connections.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func sqliteDSN(url string) string {
	if strings.Contains(url, "_pragma=") {
		return url
	}
	if strings.Contains(url, "?") {
		return url + "&" + sqlitePragmas
	}
	return url + "?" + sqlitePragmas
}

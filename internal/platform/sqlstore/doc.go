// Package sqlstore implements the store interfaces on top of database/sql.
//
// Two dialects are supported: PostgreSQL through the pgx stdlib driver and
// SQLite through the pure-Go modernc.org/sqlite driver. Queries are written
// once with '?' placeholders and rebound for PostgreSQL at execution time.
// Each dialect carries its own embedded goose migrations.
package sqlstore

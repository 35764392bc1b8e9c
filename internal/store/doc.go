// Package store declares the persistence interfaces for users and blogs and
// the errors every implementation reports.
//
// Implementations live under internal/platform: sqlstore (PostgreSQL and
// SQLite) and memory. All implementations must be safe for concurrent use.
package store

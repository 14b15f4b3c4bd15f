// Package sqlite provides a SQLite-based implementation of driven.RunStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Resolved timestamps are stored as ISO 8601 text so that they sort
// chronologically across the full 0001..9999 year range.
//
// # Data Location
//
// By default, the database is stored at ~/.shorttimeseries/entries.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite

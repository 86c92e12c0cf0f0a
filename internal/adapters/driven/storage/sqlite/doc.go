// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements through a single database connection:
//
//   - ContentStore: content records, their metadata and media variants,
//     together with the pre-delete trigger boundary (driven.RecordLifecycle)
//   - EventLog: reports of applied deletion events
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Matching
//
// Body and metadata substring queries use LIKE with escaped wildcards, so they
// are case-insensitive for ASCII text.
//
// # Data Location
//
// By default, the database is stored at ~/.reclaim/data/content.db
package sqlite

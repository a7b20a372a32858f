// Package sqlite provides the persisted implementation of the catalog
// store port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. Regex matching
// is pushed into SQL through a registered deterministic scalar function
// ("matches"), so search runs in a single query ordered by the
// sequential primary key.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory as .up.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.statcan/data/catalog.db
package sqlite

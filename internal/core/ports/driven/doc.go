// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - CatalogStore: Append-only catalog persistence and pattern matching
//   - EntrySource: Supplies raw catalog rows from a directory listing
//   - DatasetFetcher: Retrieves the raw byte pair for one table number
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven

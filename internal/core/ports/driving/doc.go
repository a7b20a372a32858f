// Package driving defines the interfaces through which external actors
// (CLI, TUI) drive the core.
//
//   - NormalizeService: Reshapes a raw dataset into an analysis-ready table
//   - CatalogService: Ingests the dataset directory and resolves searches
//
// # Import Rules
//
//   - Can Import: domain and ports/driven packages only
//   - Cannot Import: Any adapter package
package driving

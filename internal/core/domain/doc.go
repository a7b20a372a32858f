// Package domain defines the core business entities for statcan-cli.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - RawDataset: The table/metadata byte pair fetched for one table number
//   - Table: The canonical in-process tabular abstraction
//   - CatalogEntry: One row of the dataset directory
//   - Language: The publication language of a dataset
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import the Go
// standard library plus golang.org/x/text for charset tolerance. All
// other packages depend on domain, never the reverse.
package domain

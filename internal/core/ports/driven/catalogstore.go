package driven

import (
	"context"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

// CatalogStore is an ordered, append-only collection of catalog entries.
// Insertion order is canonical: every entry gets a fresh sequential
// store-local id at append time and results are always returned in
// ascending id order. The store never deduplicates; loading the same
// source twice doubles the entry count.
//
// Append calls must be serialized by the caller. Concurrent Match/List
// calls against a stable store are safe.
type CatalogStore interface {
	// Append adds entries in order, assigning each a fresh sequential id.
	Append(ctx context.Context, entries []domain.CatalogEntry) error

	// List returns every stored entry in insertion order.
	List(ctx context.Context) ([]domain.CatalogEntry, error)

	// Match returns entries whose title or description contains a
	// substring match for the regular expression pattern, in insertion
	// order. Matching is case-sensitive.
	Match(ctx context.Context, pattern string) ([]domain.CatalogEntry, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int64, error)

	// Close releases any backing resources.
	Close() error
}

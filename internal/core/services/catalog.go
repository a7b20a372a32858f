package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driving"
	"github.com/quarrydata/statcan-cli/internal/logger"
)

// Ensure Catalog implements the interface.
var _ driving.CatalogService = (*Catalog)(nil)

// Catalog resolves keyword searches against an append-only store of
// dataset directory entries.
type Catalog struct {
	store driven.CatalogStore
}

// NewCatalog creates a catalog service over the given store.
func NewCatalog(store driven.CatalogStore) *Catalog {
	return &Catalog{store: store}
}

// Load appends every row of the source to the catalog store. Each call
// is tagged with a fresh batch id; repeated loads of the same source
// accumulate duplicate entries by contract.
func (c *Catalog) Load(ctx context.Context, source driven.EntrySource) (int, error) {
	entries, err := source.Entries(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading catalog source: %w", err)
	}

	batch := uuid.New().String()
	for i := range entries {
		entries[i].Batch = batch
	}

	if err := c.store.Append(ctx, entries); err != nil {
		return 0, fmt.Errorf("appending catalog entries: %w", err)
	}
	logger.Info("appended %d catalog entries (batch %s)", len(entries), batch)
	return len(entries), nil
}

// Search joins the keywords into a single alternation pattern and
// returns every entry whose title or description matches it as a
// regular expression, in insertion order.
//
// Two behaviors are deliberate policy, not accidents: keywords are
// spliced in without escaping, so regex metacharacters keep their
// meaning; and an empty keyword list yields the degenerate pattern
// "()", which matches every entry.
func (c *Catalog) Search(ctx context.Context, keywords []string) ([]domain.CatalogEntry, error) {
	pattern := "(" + strings.Join(keywords, "|") + ")"
	logger.Debug("catalog search pattern %q", pattern)

	entries, err := c.store.Match(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("matching catalog entries: %w", err)
	}
	return entries, nil
}

// Count returns the number of catalog entries.
func (c *Catalog) Count(ctx context.Context) (int64, error) {
	return c.store.Count(ctx)
}

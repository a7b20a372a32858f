package driving

import (
	"context"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
)

// CatalogService ingests the dataset directory and resolves keyword
// searches against the local catalog.
type CatalogService interface {
	// Load appends every row of the source to the catalog. Repeated
	// calls accumulate entries; nothing is replaced or deduplicated.
	// Returns the number of entries appended.
	Load(ctx context.Context, source driven.EntrySource) (int, error)

	// Search resolves keywords into matching entries in insertion
	// order. Keywords are joined into a single alternation pattern and
	// matched as a regular expression against title and description.
	Search(ctx context.Context, keywords []string) ([]domain.CatalogEntry, error)

	// Count returns the number of catalog entries.
	Count(ctx context.Context) (int64, error)
}

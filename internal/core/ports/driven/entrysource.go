package driven

import (
	"context"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

// EntrySource supplies raw catalog rows from a dataset directory
// listing. Implementations validate the directory schema and return
// domain.ErrBackend when a required column is missing.
type EntrySource interface {
	// Entries reads every row of the directory listing. Returned
	// entries carry no Seq; the store assigns ids at append time.
	Entries(ctx context.Context) ([]domain.CatalogEntry, error)
}

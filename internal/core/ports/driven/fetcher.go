package driven

import (
	"context"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

// DatasetFetcher retrieves the raw dataset byte pair for one table
// number in one language. Retrieval transport, retry, and caching live
// entirely behind this interface.
type DatasetFetcher interface {
	// Fetch downloads and unpacks the dataset archive.
	Fetch(ctx context.Context, tableNumber string, lang domain.Language) (*domain.RawDataset, error)
}

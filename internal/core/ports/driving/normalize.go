package driving

import (
	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

// NormalizeService reshapes a raw dataset into an analysis-ready table.
type NormalizeService interface {
	// Normalize parses the raw table bytes and applies the derived
	// columns: INDICATOR, the REF_DATE calendar date, and REF_PERIOD
	// when fiscal-year inference fires.
	Normalize(raw *domain.RawDataset) (*domain.Table, error)

	// PreparedCSV normalizes the dataset and encodes it back to CSV
	// with REF_DATE rendered as an ISO calendar date.
	PreparedCSV(raw *domain.RawDataset) ([]byte, error)
}

package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driving"
	"github.com/quarrydata/statcan-cli/internal/logger"
)

// Ensure NormalizeEngine implements the interface.
var _ driving.NormalizeService = (*NormalizeEngine)(nil)

// NormalizeEngine reshapes raw dataset bytes into an analysis-ready
// table. It is a pure transformation: no I/O, deterministic, and
// idempotent over re-encoded output.
type NormalizeEngine struct{}

// NewNormalizeEngine creates a normalization engine.
func NewNormalizeEngine() *NormalizeEngine {
	return &NormalizeEngine{}
}

// Normalize parses the raw table and applies the derived columns. The
// dataset name comes from the metadata sidecar and fills the INDICATOR
// column of every row.
func (e *NormalizeEngine) Normalize(raw *domain.RawDataset) (*domain.Table, error) {
	name, err := raw.DatasetName()
	if err != nil {
		return nil, err
	}
	return e.normalize(raw.Table, name)
}

// PreparedCSV normalizes the dataset and encodes it back to CSV with
// REF_DATE rendered as an ISO calendar date.
func (e *NormalizeEngine) PreparedCSV(raw *domain.RawDataset) ([]byte, error) {
	table, err := e.Normalize(raw)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := table.EncodeCSV(&buf); err != nil {
		return nil, fmt.Errorf("encoding prepared csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *NormalizeEngine) normalize(tableBytes []byte, datasetName string) (*domain.Table, error) {
	r := csv.NewReader(bytes.NewReader(domain.DecodeText(tableBytes)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing table csv: %v", domain.ErrData, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: table is empty", domain.ErrData)
	}
	header := records[0]
	rows := records[1:]
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: table has no data rows", domain.ErrData)
	}

	refIdx := -1
	for i, name := range header {
		if name == domain.ColumnRefDate {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return nil, fmt.Errorf("%w: missing column %s", domain.ErrData, domain.ColumnRefDate)
	}

	// The rule is sampled once from the first data row and applied
	// uniformly; heterogeneous formats within one table are not detected.
	rule := classifyRefDate(rows[0][refIdx])
	logger.Debug("REF_DATE sample %q selected %s rule", rows[0][refIdx], rule)

	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		d, err := rule.parse(row[refIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		dates[i] = d
	}

	table := domain.NewTable(len(rows))
	hadIndicator := false
	hadRefPeriod := false
	for j, name := range header {
		switch {
		case j == refIdx:
			if err := table.AppendDateColumn(domain.ColumnRefDate, dates); err != nil {
				return nil, err
			}
		case name == domain.ColumnIndicator:
			// Re-normalizing already-prepared output: overwrite in
			// place so the column set stays stable.
			hadIndicator = true
			table.AppendConstColumn(domain.ColumnIndicator, datasetName)
		case name == domain.ColumnRefPeriod:
			hadRefPeriod = true
			if rule == ruleFiscalYear {
				// Fiscal tables carry the literal in every row; whatever
				// the raw export said is replaced.
				table.AppendConstColumn(domain.ColumnRefPeriod, "Fiscal Year")
			} else if err := table.AppendTextColumn(name, columnValues(rows, j)); err != nil {
				return nil, err
			}
		default:
			// COORDINATE and every other column stay textual; dotted
			// identifiers like "1.1" are never reinterpreted as numbers.
			if err := table.AppendTextColumn(name, columnValues(rows, j)); err != nil {
				return nil, err
			}
		}
	}

	if !hadIndicator {
		table.AppendConstColumn(domain.ColumnIndicator, datasetName)
	}
	if rule == ruleFiscalYear && !hadRefPeriod {
		table.AppendConstColumn(domain.ColumnRefPeriod, "Fiscal Year")
	}
	return table, nil
}

// columnValues extracts one column of a row-major record set.
func columnValues(rows [][]string, idx int) []string {
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = row[idx]
	}
	return values
}

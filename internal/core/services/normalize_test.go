package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

const testMetadata = "\"Cube Title\",\"Product Id\"\n\"New housing price index\",\"18100205\"\n"

func newTestDataset(table string) *domain.RawDataset {
	return domain.NewRawDataset([]byte(table), []byte(testMetadata))
}

func TestNormalize_AnnualDates(t *testing.T) {
	raw := newTestDataset("REF_DATE,GEO,VALUE\n2020,Canada,100.1\n2021,Canada,105.3\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, []string{"REF_DATE", "GEO", "VALUE", "INDICATOR"}, table.ColumnNames())

	v, _ := table.Cell(0, domain.ColumnRefDate)
	assert.Equal(t, "2020-01-01", v)
	v, _ = table.Cell(1, domain.ColumnRefDate)
	assert.Equal(t, "2021-01-01", v)

	// Annual tables never gain a REF_PERIOD column.
	_, ok := table.Column(domain.ColumnRefPeriod)
	assert.False(t, ok)
}

func TestNormalize_MonthlyDates(t *testing.T) {
	raw := newTestDataset("REF_DATE,VALUE\n2021-01,1\n2021-02,2\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	v, _ := table.Cell(0, domain.ColumnRefDate)
	assert.Equal(t, "2021-01-01", v)
	v, _ = table.Cell(1, domain.ColumnRefDate)
	assert.Equal(t, "2021-02-01", v)
}

func TestNormalize_FiscalYearAddsRefPeriod(t *testing.T) {
	raw := newTestDataset("REF_DATE,VALUE\n2019/2020,7\n2020/2021,8\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	v, _ := table.Cell(0, domain.ColumnRefDate)
	assert.Equal(t, "2020-03-31", v)
	v, _ = table.Cell(1, domain.ColumnRefDate)
	assert.Equal(t, "2021-03-31", v)

	period, ok := table.Cell(0, domain.ColumnRefPeriod)
	require.True(t, ok)
	assert.Equal(t, "Fiscal Year", period)
}

func TestNormalize_FiscalYearOverwritesExistingRefPeriod(t *testing.T) {
	raw := newTestDataset("REF_DATE,REF_PERIOD,VALUE\n2019/2020,Quarter,1\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	period, ok := table.Cell(0, domain.ColumnRefPeriod)
	require.True(t, ok)
	assert.Equal(t, "Fiscal Year", period)
	assert.Equal(t, []string{"REF_DATE", "REF_PERIOD", "VALUE", "INDICATOR"}, table.ColumnNames())
}

func TestNormalize_NonFiscalPreservesExistingRefPeriod(t *testing.T) {
	raw := newTestDataset("REF_DATE,REF_PERIOD,VALUE\n2021,Quarter,1\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	period, ok := table.Cell(0, domain.ColumnRefPeriod)
	require.True(t, ok)
	assert.Equal(t, "Quarter", period)
}

func TestNormalize_IndicatorFilledFromMetadata(t *testing.T) {
	raw := newTestDataset("REF_DATE,VALUE\n2021,1\n2022,2\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	for row := 0; row < table.RowCount(); row++ {
		v, ok := table.Cell(row, domain.ColumnIndicator)
		require.True(t, ok)
		assert.Equal(t, "New housing price index", v)
	}
}

func TestNormalize_CoordinateStaysTextual(t *testing.T) {
	raw := newTestDataset("REF_DATE,COORDINATE,VALUE\n2021,1.1,100\n2021,1.10,200\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	col, ok := table.Column(domain.ColumnCoordinate)
	require.True(t, ok)
	assert.Equal(t, domain.KindText, col.Kind)

	// "1.1" and "1.10" are distinct positions, not equal numbers.
	v0, _ := table.Cell(0, domain.ColumnCoordinate)
	v1, _ := table.Cell(1, domain.ColumnCoordinate)
	assert.Equal(t, "1.1", v0)
	assert.Equal(t, "1.10", v1)
}

func TestNormalize_RuleSampledFromFirstRow(t *testing.T) {
	// The second row's format doesn't match the sampled year rule.
	raw := newTestDataset("REF_DATE,VALUE\n2021,1\n2021-02,2\n")
	engine := NewNormalizeEngine()

	_, err := engine.Normalize(raw)
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestNormalize_Idempotent(t *testing.T) {
	raw := newTestDataset("REF_DATE,GEO,VALUE\n2019/2020,Canada,7\n2020/2021,Canada,8\n")
	engine := NewNormalizeEngine()

	first, err := engine.PreparedCSV(raw)
	require.NoError(t, err)

	second, err := engine.PreparedCSV(domain.NewRawDataset(first, []byte(testMetadata)))
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "re-normalizing prepared output must be a no-op")
}

func TestNormalize_MissingRefDate(t *testing.T) {
	raw := newTestDataset("GEO,VALUE\nCanada,1\n")
	engine := NewNormalizeEngine()

	_, err := engine.Normalize(raw)
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestNormalize_NoDataRows(t *testing.T) {
	raw := newTestDataset("REF_DATE,GEO,VALUE\n")
	engine := NewNormalizeEngine()

	_, err := engine.Normalize(raw)
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestNormalize_EmptyTable(t *testing.T) {
	raw := newTestDataset("")
	engine := NewNormalizeEngine()

	_, err := engine.Normalize(raw)
	assert.ErrorIs(t, err, domain.ErrData)
}

func TestNormalize_BadMetadata(t *testing.T) {
	raw := domain.NewRawDataset([]byte("REF_DATE\n2021\n"), []byte("just one line"))
	engine := NewNormalizeEngine()

	_, err := engine.Normalize(raw)
	assert.ErrorIs(t, err, domain.ErrFormat)
}

func TestNormalize_ColumnOrderPreserved(t *testing.T) {
	raw := newTestDataset("GEO,REF_DATE,UOM,VALUE\nCanada,2021,Index,100\n")
	engine := NewNormalizeEngine()

	table, err := engine.Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"GEO", "REF_DATE", "UOM", "VALUE", "INDICATOR"}, table.ColumnNames())
}

func TestPreparedCSV_RefDateRendered(t *testing.T) {
	raw := newTestDataset("REF_DATE,VALUE\n2021-03,9\n")
	engine := NewNormalizeEngine()

	prepared, err := engine.PreparedCSV(raw)
	require.NoError(t, err)

	assert.Contains(t, string(prepared), "2021-03-01")
}

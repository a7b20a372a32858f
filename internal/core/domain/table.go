package domain

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// Well-known column names in normalized tables.
const (
	// ColumnRefDate is the reference-period column. Raw exports carry it
	// as a string; normalization replaces it with a calendar date.
	ColumnRefDate = "REF_DATE"

	// ColumnRefPeriod is added only when fiscal-year inference fires.
	ColumnRefPeriod = "REF_PERIOD"

	// ColumnIndicator holds the dataset's display name, constant per table.
	ColumnIndicator = "INDICATOR"

	// ColumnCoordinate identifies a data series position. Its values are
	// dotted multi-part identifiers and must stay textual.
	ColumnCoordinate = "COORDINATE"
)

// ColumnKind is the normalized type of a column.
type ColumnKind int

const (
	// KindText is a plain text column.
	KindText ColumnKind = iota

	// KindDate is a calendar-date column.
	KindDate
)

// Column is one named, typed column of a Table. Exactly one of Text or
// Dates is populated, matching Kind.
type Column struct {
	Name  string
	Kind  ColumnKind
	Text  []string
	Dates []time.Time
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Kind == KindDate {
		return len(c.Dates)
	}
	return len(c.Text)
}

// Value renders the value at row i. Dates render as ISO calendar dates.
func (c *Column) Value(i int) string {
	if c.Kind == KindDate {
		return c.Dates[i].Format("2006-01-02")
	}
	return c.Text[i]
}

// Table is the canonical in-process tabular abstraction: an ordered
// sequence of named, typed columns of equal length, stored column-major.
type Table struct {
	cols []Column
	rows int
}

// NewTable creates an empty table expecting rows values per column.
func NewTable(rows int) *Table {
	return &Table{rows: rows}
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return t.rows
}

// Columns returns the columns in order.
func (t *Table) Columns() []Column {
	return t.cols
}

// ColumnNames returns the ordered column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i := range t.cols {
		names[i] = t.cols[i].Name
	}
	return names
}

// Column returns the named column, or false if absent.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.cols {
		if t.cols[i].Name == name {
			return &t.cols[i], true
		}
	}
	return nil, false
}

// AppendTextColumn appends a text column.
func (t *Table) AppendTextColumn(name string, values []string) error {
	if len(values) != t.rows {
		return fmt.Errorf("%w: column %s has %d values, table has %d rows", ErrData, name, len(values), t.rows)
	}
	t.cols = append(t.cols, Column{Name: name, Kind: KindText, Text: values})
	return nil
}

// AppendDateColumn appends a calendar-date column.
func (t *Table) AppendDateColumn(name string, values []time.Time) error {
	if len(values) != t.rows {
		return fmt.Errorf("%w: column %s has %d values, table has %d rows", ErrData, name, len(values), t.rows)
	}
	t.cols = append(t.cols, Column{Name: name, Kind: KindDate, Dates: values})
	return nil
}

// AppendConstColumn appends a text column holding the same value in
// every row.
func (t *Table) AppendConstColumn(name, value string) {
	values := make([]string, t.rows)
	for i := range values {
		values[i] = value
	}
	t.cols = append(t.cols, Column{Name: name, Kind: KindText, Text: values})
}

// Cell returns the rendered value at (row, column name).
func (t *Table) Cell(row int, name string) (string, bool) {
	col, ok := t.Column(name)
	if !ok || row < 0 || row >= t.rows {
		return "", false
	}
	return col.Value(row), true
}

// EncodeCSV writes the table as CSV: one header row of column names,
// then the data rows. Date columns render as ISO calendar dates.
func (t *Table) EncodeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	record := make([]string, len(t.cols))
	for row := 0; row < t.rows; row++ {
		for i := range t.cols {
			record[i] = t.cols[i].Value(row)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
)

// Required directory columns. "lang" is accepted as a legacy alias for
// "language"; any extra columns are ignored.
var requiredColumns = []string{"title", "id", "description", "release_date"}

// releaseDateLayouts are tried in order when parsing release dates.
var releaseDateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// Ensure CSVSource implements the interface.
var _ driven.EntrySource = (*CSVSource)(nil)

// CSVSource reads catalog entries from directory CSV bytes.
type CSVSource struct {
	data []byte
}

// NewCSVSource creates a source over raw directory CSV bytes.
func NewCSVSource(data []byte) *CSVSource {
	return &CSVSource{data: data}
}

// NewReaderSource creates a source by draining r.
func NewReaderSource(r io.Reader) (*CSVSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog source: %w", err)
	}
	return NewCSVSource(data), nil
}

// Entries parses the directory CSV into catalog entries.
func (s *CSVSource) Entries(_ context.Context) ([]domain.CatalogEntry, error) {
	return parseDirectory(s.data)
}

// parseDirectory decodes a directory CSV and validates its schema.
func parseDirectory(data []byte) ([]domain.CatalogEntry, error) {
	r := csv.NewReader(bytes.NewReader(domain.DecodeText(data)))
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing directory csv: %v", domain.ErrFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: directory csv is empty", domain.ErrFormat)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: directory csv missing column %q", domain.ErrBackend, col)
		}
	}
	langIdx, ok := index["language"]
	if !ok {
		langIdx, ok = index["lang"]
	}
	if !ok {
		return nil, fmt.Errorf("%w: directory csv missing column %q", domain.ErrBackend, "language")
	}

	entries := make([]domain.CatalogEntry, 0, len(records)-1)
	for i, record := range records[1:] {
		release, err := parseReleaseDate(record[index["release_date"]])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrFormat, i+1, err)
		}
		entries = append(entries, domain.CatalogEntry{
			Title:       record[index["title"]],
			DataID:      record[index["id"]],
			Description: record[index["description"]],
			ReleaseDate: release,
			Language:    record[langIdx],
		})
	}
	return entries, nil
}

func parseReleaseDate(value string) (time.Time, error) {
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("release_date %q is not a date", value)
}

package domain

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"sync"
)

// RawDataset is the byte pair fetched for one (table number, language):
// the main data table and its metadata sidecar. Both blobs are immutable
// once constructed.
type RawDataset struct {
	// Table is the raw CSV of the data table (header plus rows).
	Table []byte

	// Metadata is the raw CSV metadata sidecar. Its second line's first
	// field is the human-readable dataset name.
	Metadata []byte

	nameOnce sync.Once
	name     string
	nameErr  error
}

// NewRawDataset constructs a RawDataset from the two CSV blobs.
func NewRawDataset(table, metadata []byte) *RawDataset {
	return &RawDataset{Table: table, Metadata: metadata}
}

// DatasetName returns the dataset's display name from the metadata
// sidecar: the first CSV field of the second line. The value is computed
// once and memoized; the backing bytes are immutable so the cache is
// never invalidated.
func (d *RawDataset) DatasetName() (string, error) {
	d.nameOnce.Do(func() {
		d.name, d.nameErr = extractDatasetName(d.Metadata)
	})
	return d.name, d.nameErr
}

// extractDatasetName splits the metadata blob into at most three segments
// by line breaks, discards the header line, and CSV-decodes the second
// line, returning its first field.
func extractDatasetName(metadata []byte) (string, error) {
	segments := bytes.SplitN(DecodeText(metadata), []byte("\n"), 3)
	if len(segments) < 2 {
		return "", fmt.Errorf("%w: metadata has %d line(s), need at least 2", ErrFormat, len(segments))
	}
	second := strings.TrimSuffix(string(segments[1]), "\r")

	r := csv.NewReader(strings.NewReader(second))
	fields, err := r.Read()
	if err != nil {
		return "", fmt.Errorf("%w: decoding metadata line 2: %v", ErrFormat, err)
	}
	return fields[0], nil
}

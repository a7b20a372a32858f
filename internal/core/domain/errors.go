package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrFormat indicates malformed metadata or catalog-source bytes,
	// e.g. a metadata sidecar with fewer than two lines or a line that
	// cannot be CSV-decoded.
	ErrFormat = errors.New("malformed input")

	// ErrData indicates a structurally invalid data table: no data rows,
	// a missing required column, or a reference date that cannot be
	// parsed under the selected rule.
	ErrData = errors.New("invalid table data")

	// ErrBackend indicates a catalog source that does not satisfy the
	// store contract, e.g. a directory CSV missing a required column.
	ErrBackend = errors.New("catalog backend error")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")
)

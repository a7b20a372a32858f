package domain

import "time"

// CatalogEntry is one row of the dataset directory. Seq is assigned by
// the store at insertion time and is independent of the externally
// supplied DataID, which may collide across languages.
type CatalogEntry struct {
	// Seq is the store-local sequential insertion id. Zero until the
	// entry has been appended to a store.
	Seq int64

	// Title is the dataset title.
	Title string

	// DataID is the agency's table identifier.
	DataID string

	// Description is the dataset description; may be empty.
	Description string

	// ReleaseDate is the dataset's release date.
	ReleaseDate time.Time

	// Language is the publication language code.
	Language string

	// Batch tags the load call that ingested this entry.
	Batch string
}

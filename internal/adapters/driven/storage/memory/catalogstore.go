// Package memory provides in-memory implementations of driven port
// interfaces, used for tests and for sessions that don't need a
// persisted catalog.
package memory

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory, append-only implementation of
// driven.CatalogStore. Entries live for the store's lifetime; there is
// no way back to empty other than discarding the store.
type CatalogStore struct {
	mu      sync.RWMutex
	entries []domain.CatalogEntry
	nextSeq int64
}

// NewCatalogStore creates an empty in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{nextSeq: 1}
}

// Append adds entries in order, assigning sequential ids.
func (s *CatalogStore) Append(_ context.Context, entries []domain.CatalogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		e.Seq = s.nextSeq
		s.nextSeq++
		s.entries = append(s.entries, e)
	}
	return nil
}

// List returns every stored entry in insertion order.
func (s *CatalogStore) List(_ context.Context) ([]domain.CatalogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CatalogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Match returns entries whose title or description matches the pattern,
// in insertion order.
func (s *CatalogStore) Match(_ context.Context, pattern string) ([]domain.CatalogEntry, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: compiling pattern %q: %v", domain.ErrInvalidInput, pattern, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CatalogEntry
	for _, e := range s.entries {
		if re.MatchString(e.Title) || re.MatchString(e.Description) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Count returns the number of stored entries.
func (s *CatalogStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.entries)), nil
}

// Close is a no-op for the in-memory store.
func (s *CatalogStore) Close() error {
	return nil
}

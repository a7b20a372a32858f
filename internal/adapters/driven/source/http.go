package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
	"github.com/quarrydata/statcan-cli/internal/logger"
)

// Ensure HTTPSource implements the interface.
var _ driven.EntrySource = (*HTTPSource)(nil)

// HTTPSource fetches the directory CSV from an HTTP endpoint.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource creates a source over a directory URL. A nil client
// falls back to http.DefaultClient.
func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, url: url}
}

// Entries downloads and parses the directory listing.
func (s *HTTPSource) Entries(ctx context.Context) ([]domain.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building directory request: %w", err)
	}

	logger.Debug("fetching catalog directory %s", s.url)
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching directory: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading directory response: %w", err)
	}
	return parseDirectory(data)
}

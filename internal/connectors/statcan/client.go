package statcan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
	"golang.org/x/time/rate"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
	"github.com/quarrydata/statcan-cli/internal/logger"
)

const (
	// DefaultTimeout covers the largest table archives.
	DefaultTimeout = 300 * time.Second

	// DefaultRate is the politeness throttle (requests per second).
	DefaultRate = 1.0
)

// Ensure Client implements the interface.
var _ driven.DatasetFetcher = (*Client)(nil)

// Client downloads dataset archives.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithRate overrides the politeness throttle.
func WithRate(perSecond float64) Option {
	return func(cl *Client) { cl.limiter = rate.NewLimiter(rate.Limit(perSecond), 1) }
}

// WithCache enables the on-disk response cache.
func WithCache(cache *Cache) Option {
	return func(cl *Client) { cl.cache = cache }
}

// NewClient creates a dataset client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRate), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CanonicalTableNumber converts a user-facing hyphenated table number
// ("18-10-0004-01") into the archive's base name ("18100004"): the
// trailing two characters are dropped and hyphens removed.
func CanonicalTableNumber(tableNumber string) string {
	if len(tableNumber) <= 2 {
		return ""
	}
	tableNumber = tableNumber[:len(tableNumber)-2]
	return strings.ReplaceAll(tableNumber, "-", "")
}

// Fetch downloads and unpacks the dataset archive for one table number.
func (c *Client) Fetch(ctx context.Context, tableNumber string, lang domain.Language) (*domain.RawDataset, error) {
	n := CanonicalTableNumber(tableNumber)
	url := lang.ArchiveURL(n)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}
	return unpackArchive(body, n)
}

// get retrieves a URL body, serving from cache when possible.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			logger.Debug("cache hit for %s", url)
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	logger.Info("downloading %s", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(url, body); err != nil {
			logger.Warn("caching %s: %v", url, err)
		}
	}
	return body, nil
}

// unpackArchive extracts {n}.csv and {n}_MetaData.csv from the zip.
func unpackArchive(body []byte, n string) (*domain.RawDataset, error) {
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening archive: %v", domain.ErrFormat, err)
	}

	table, err := readArchiveFile(zr, n+".csv")
	if err != nil {
		return nil, err
	}
	metadata, err := readArchiveFile(zr, n+"_MetaData.csv")
	if err != nil {
		return nil, err
	}
	return domain.NewRawDataset(table, metadata), nil
}

func readArchiveFile(zr *zip.Reader, name string) ([]byte, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: archive missing %s: %v", domain.ErrFormat, name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s from archive: %w", name, err)
	}
	return data, nil
}

// SavePrepared writes the prepared CSV next to other saved tables. A
// save path that is not a directory logs an error and leaves the
// dataset untouched; retrieval already succeeded, saving is best effort.
func SavePrepared(saveDir, tableNumber string, lang domain.Language, prepared []byte) (string, error) {
	info, err := os.Stat(saveDir)
	if err != nil || !info.IsDir() {
		logger.Error("save dir %s is not a directory, not saving contents to a csv file", saveDir)
		return "", nil
	}
	path := filepath.Join(saveDir, fmt.Sprintf("statcan_%s_%s.csv", CanonicalTableNumber(tableNumber), lang))
	logger.Info("saving to %s", path)
	if err := os.WriteFile(path, prepared, 0644); err != nil {
		return "", fmt.Errorf("saving %s: %w", path, err)
	}
	return path, nil
}

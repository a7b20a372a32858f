package statcan

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheTTL is how long cached archive bodies stay fresh. Tables
// are republished daily at most.
const DefaultCacheTTL = 24 * time.Hour

// Cache is a content-addressed on-disk response cache: one file per
// URL, keyed by the URL's SHA-256, freshness gated by mtime.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache creates a cache rooted at dir. If dir is empty, defaults to
// ".cache" in the working directory. A zero ttl uses DefaultCacheTTL.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		dir = ".cache"
	}
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Get returns the cached body for url, if present and fresh.
func (c *Cache) Get(url string) ([]byte, bool) {
	path := c.path(url)
	info, err := os.Stat(path)
	if err != nil || time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put stores the body for url.
func (c *Cache) Put(url string, body []byte) error {
	return os.WriteFile(c.path(url), body, 0600)
}

func (c *Cache) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

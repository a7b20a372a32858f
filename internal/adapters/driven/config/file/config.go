// Package file provides the TOML-backed application configuration.
// Configuration lives at ~/.statcan/config.toml and is created with
// defaults on first use.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultDirectoryURL is the built-in dataset directory listing.
const DefaultDirectoryURL = "https://gist.githubusercontent.com/aalekhpatel07/5a6ac4537d9b38965ebc0c2482f82d55/raw/e92efb28aecf28d0c0fae4f95058b8ad14948e4d/statcan_data.csv"

// Config is the persisted application configuration.
type Config struct {
	// Language is the default dataset language ("en" or "fr").
	Language string `toml:"language"`

	// DataDir holds the catalog database. Empty means ~/.statcan/data.
	DataDir string `toml:"data_dir"`

	// CacheDir holds cached archive bodies. Empty disables caching.
	CacheDir string `toml:"cache_dir"`

	Catalog CatalogConfig `toml:"catalog"`
	Fetch   FetchConfig   `toml:"fetch"`
}

// CatalogConfig configures catalog ingestion.
type CatalogConfig struct {
	// Source is the directory listing URL used when no explicit
	// source is given.
	Source string `toml:"source"`
}

// FetchConfig configures dataset retrieval.
type FetchConfig struct {
	// TimeoutSeconds bounds one archive download.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// RatePerSecond is the politeness throttle.
	RatePerSecond float64 `toml:"rate_per_second"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Language: "en",
		CacheDir: ".cache",
		Catalog:  CatalogConfig{Source: DefaultDirectoryURL},
		Fetch:    FetchConfig{TimeoutSeconds: 300, RatePerSecond: 1.0},
	}
}

// Store loads and saves the configuration file.
type Store struct {
	path string
}

// NewStore creates a config store. If configDir is empty, defaults to
// ~/.statcan.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".statcan")
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(configDir, "config.toml")}, nil
}

// Load reads the configuration, filling defaults for a missing file and
// for unset fields.
func (s *Store) Load() (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = DefaultDirectoryURL
	}
	if cfg.Fetch.TimeoutSeconds <= 0 {
		cfg.Fetch.TimeoutSeconds = 300
	}
	if cfg.Fetch.RatePerSecond <= 0 {
		cfg.Fetch.RatePerSecond = 1.0
	}
	return cfg, nil
}

// Save persists the configuration with restricted permissions.
func (s *Store) Save(cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(s.path, data, 0600)
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.path
}

// Package cli wires the cobra command surface: download, catalog
// load/search, tui, and version.
package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/quarrydata/statcan-cli/internal/adapters/driven/config/file"
	"github.com/quarrydata/statcan-cli/internal/adapters/driven/storage/sqlite"
	"github.com/quarrydata/statcan-cli/internal/connectors/statcan"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driving"
	"github.com/quarrydata/statcan-cli/internal/core/services"
	"github.com/quarrydata/statcan-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Injected services. Left nil in production and constructed on demand
// from configuration; tests swap these in directly.
var (
	catalogService   driving.CatalogService
	normalizeService driving.NormalizeService
	datasetFetcher   driven.DatasetFetcher
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "statcan",
	Short: "Fetch, normalize, and search statistics tables",
	Long: `statcan downloads tabular datasets from the national statistics
agency, reshapes each raw CSV export into an analysis-ready table, and
keeps a searchable local catalog of available datasets.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the persisted configuration, falling back to
// defaults when the file is absent.
func loadConfig() (configfile.Config, error) {
	store, err := configfile.NewStore("")
	if err != nil {
		return configfile.Default(), fmt.Errorf("opening config: %w", err)
	}
	return store.Load()
}

// openCatalogService returns the injected catalog service, or builds
// one over the persisted SQLite store. The returned cleanup closes the
// store.
func openCatalogService(cfg configfile.Config) (driving.CatalogService, func(), error) {
	if catalogService != nil {
		return catalogService, func() {}, nil
	}
	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog store: %w", err)
	}
	return services.NewCatalog(store), func() { store.Close() }, nil
}

// newNormalizeService returns the injected engine or a fresh one.
func newNormalizeService() driving.NormalizeService {
	if normalizeService != nil {
		return normalizeService
	}
	return services.NewNormalizeEngine()
}

// newDatasetFetcher returns the injected fetcher or a configured client.
func newDatasetFetcher(cfg configfile.Config) driven.DatasetFetcher {
	if datasetFetcher != nil {
		return datasetFetcher
	}
	opts := []statcan.Option{
		statcan.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second}),
		statcan.WithRate(cfg.Fetch.RatePerSecond),
	}
	if cfg.CacheDir != "" {
		if cache, err := statcan.NewCache(cfg.CacheDir, 0); err == nil {
			opts = append(opts, statcan.WithCache(cache))
		} else {
			logger.Warn("response cache disabled: %v", err)
		}
	}
	return statcan.NewClient(opts...)
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quarrydata/statcan-cli/internal/adapters/driven/source"
	"github.com/quarrydata/statcan-cli/internal/core/domain"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driven"
	"github.com/quarrydata/statcan-cli/internal/core/ports/driving"
)

var (
	catalogLoadSource   string
	catalogLoadManifest string
	catalogLoadWatch    bool
	catalogSearchJSON   bool
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage and search the local dataset catalog",
}

var catalogLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Ingest the dataset directory into the local catalog",
	Long: `Reads the dataset directory listing and appends every row to the
local catalog. Loading is append-only: repeated loads of the same
source accumulate duplicate entries. Discard the catalog database to
start fresh.`,
	RunE: runCatalogLoad,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search KEYWORD...",
	Short: "Search the catalog by keyword",
	Long: `Matches keywords against dataset titles and descriptions. Keywords
are joined into a single alternation pattern and treated as a regular
expression; matching is case-sensitive. Results print in catalog
insertion order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogSearch,
}

func init() {
	catalogLoadCmd.Flags().StringVar(&catalogLoadSource, "source", "", "directory URL or local CSV path (defaults to the configured source)")
	catalogLoadCmd.Flags().StringVar(&catalogLoadManifest, "manifest", "", "YAML manifest listing directory sources")
	catalogLoadCmd.Flags().BoolVar(&catalogLoadWatch, "watch", false, "watch a local source file and re-ingest on change")
	catalogSearchCmd.Flags().BoolVar(&catalogSearchJSON, "json", false, "output results as JSON")
	catalogCmd.AddCommand(catalogLoadCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogLoad(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, cleanup, err := openCatalogService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()

	if catalogLoadManifest != "" {
		return loadFromManifest(ctx, cmd, svc, catalogLoadManifest)
	}

	target := catalogLoadSource
	if target == "" {
		target = cfg.Catalog.Source
	}

	if isLocalPath(target) {
		fileSource := source.NewFileSource(target)
		n, err := svc.Load(ctx, fileSource)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		cmd.Printf("Loaded %d entries from %s.\n", n, target)

		if catalogLoadWatch {
			watchCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()
			cmd.Println("Watching for changes; press Ctrl-C to stop.")
			err := fileSource.Watch(watchCtx, func() error {
				n, err := svc.Load(watchCtx, fileSource)
				if err != nil {
					return err
				}
				cmd.Printf("Re-ingested %d entries.\n", n)
				return nil
			})
			if err != nil && watchCtx.Err() == nil {
				return err
			}
		}
		return nil
	}

	if catalogLoadWatch {
		return fmt.Errorf("%w: --watch requires a local source file", domain.ErrInvalidInput)
	}
	n, err := svc.Load(ctx, source.NewHTTPSource(nil, target))
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	cmd.Printf("Loaded %d entries from %s.\n", n, target)
	return nil
}

// loadFromManifest ingests every enabled manifest source in order.
func loadFromManifest(ctx context.Context, cmd *cobra.Command, svc driving.CatalogService, path string) error {
	manifest, err := source.LoadManifest(path)
	if err != nil {
		return err
	}
	total := 0
	for _, ms := range manifest.Enabled() {
		var src driven.EntrySource
		if ms.IsLocalFile() {
			src = source.NewFileSource(ms.File)
		} else {
			src = source.NewHTTPSource(nil, ms.URL)
		}
		n, err := svc.Load(ctx, src)
		if err != nil {
			return fmt.Errorf("loading source %q: %w", ms.Name, err)
		}
		cmd.Printf("Loaded %d entries from %s.\n", n, ms.Name)
		total += n
	}
	cmd.Printf("Loaded %d entries total.\n", total)
	return nil
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	svc, cleanup, err := openCatalogService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	entries, err := svc.Search(context.Background(), args)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if catalogSearchJSON {
		return outputEntriesJSON(cmd, entries)
	}
	return outputEntriesTable(cmd, entries)
}

func outputEntriesJSON(cmd *cobra.Command, entries []domain.CatalogEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputEntriesTable(cmd *cobra.Command, entries []domain.CatalogEntry) error {
	if len(entries) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	width := terminalWidth()
	cmd.Printf("Results (%d):\n\n", len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("  [%d] %s (%s, %s, released %s)",
			e.Seq, e.Title, e.DataID, e.Language, e.ReleaseDate.Format("2006-01-02"))
		cmd.Println(truncateCell(line, width))
		if e.Description != "" {
			cmd.Println(truncateCell("      "+e.Description, width))
		}
	}
	return nil
}

// isLocalPath reports whether target names a local file rather than a URL.
func isLocalPath(target string) bool {
	return !strings.Contains(target, "://")
}

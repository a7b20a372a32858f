package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quarrydata/statcan-cli/internal/connectors/statcan"
	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

var (
	downloadLanguage string
	downloadSaveDir  string
	downloadRows     int
	downloadCSV      bool
)

var downloadCmd = &cobra.Command{
	Use:   "download TABLE_NUMBER",
	Short: "Download and normalize a dataset table",
	Long: `Downloads the zipped CSV export for a hyphenated table number
(e.g. 18-10-0004-01), reshapes it into an analysis-ready table, and
prints a preview. Use --csv to emit the full prepared CSV instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadLanguage, "language", "l", "", "dataset language (en or fr)")
	downloadCmd.Flags().StringVar(&downloadSaveDir, "save-dir", "", "save the prepared CSV to this directory")
	downloadCmd.Flags().IntVar(&downloadRows, "rows", 5, "number of preview rows")
	downloadCmd.Flags().BoolVar(&downloadCSV, "csv", false, "write the full prepared CSV to stdout")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	tableNumber := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if downloadLanguage == "" {
		downloadLanguage = cfg.Language
	}
	lang, err := domain.ParseLanguage(downloadLanguage)
	if err != nil {
		return err
	}

	ctx := context.Background()
	raw, err := newDatasetFetcher(cfg).Fetch(ctx, tableNumber, lang)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", tableNumber, err)
	}

	table, err := newNormalizeService().Normalize(raw)
	if err != nil {
		return fmt.Errorf("normalizing %s: %w", tableNumber, err)
	}

	if downloadSaveDir != "" || downloadCSV {
		var buf bytes.Buffer
		if err := table.EncodeCSV(&buf); err != nil {
			return fmt.Errorf("encoding prepared csv: %w", err)
		}
		if downloadSaveDir != "" {
			if _, err := statcan.SavePrepared(downloadSaveDir, tableNumber, lang, buf.Bytes()); err != nil {
				return err
			}
		}
		if downloadCSV {
			cmd.Print(buf.String())
			return nil
		}
	}

	printPreview(cmd, table, downloadRows)
	return nil
}

// printPreview renders the first few rows, one line per row, truncated
// to the terminal width.
func printPreview(cmd *cobra.Command, table *domain.Table, rows int) {
	width := terminalWidth()
	if rows > table.RowCount() {
		rows = table.RowCount()
	}

	name, _ := table.Cell(0, domain.ColumnIndicator)
	cmd.Println(truncateCell(name, width))
	cmd.Printf("%d rows x %d columns\n\n", table.RowCount(), len(table.Columns()))

	header := ""
	for i, col := range table.Columns() {
		if i > 0 {
			header += "  "
		}
		header += col.Name
	}
	cmd.Println(truncateCell(header, width))

	for r := 0; r < rows; r++ {
		line := ""
		for i, col := range table.Columns() {
			if i > 0 {
				line += "  "
			}
			line += col.Value(r)
		}
		cmd.Println(truncateCell(line, width))
	}
}

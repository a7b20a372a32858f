package cli

import (
	"github.com/spf13/cobra"

	"github.com/quarrydata/statcan-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive catalog search",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		svc, cleanup, err := openCatalogService(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		return tui.Run(svc)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

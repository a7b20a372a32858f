// Command statcan fetches tabular statistical datasets, reshapes them
// into analysis-ready tables, and keeps a searchable local catalog.
package main

import (
	"os"

	"github.com/quarrydata/statcan-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

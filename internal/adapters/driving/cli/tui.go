package cli

import (
	"github.com/spf13/cobra"

	"github.com/h3x49r4m/peta-search/internal/adapters/driving/tui"
)

var tuiIndexPath string

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search interactively in the terminal",
	RunE: func(cmd *cobra.Command, _ []string) error {
		engine, err := loadEngine(cmd, tuiIndexPath)
		if err != nil {
			return err
		}
		return tui.Run(engine)
	},
}

func init() {
	tuiCmd.Flags().StringVar(&tuiIndexPath, "index", "search-index.json", "artifact path")
	rootCmd.AddCommand(tuiCmd)
}

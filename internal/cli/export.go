package cli

import (
	"github.com/spf13/cobra"

	"sentinelwatch/internal/app"
)

var (
	exportCSVPath   string
	exportPNGPath   string
	exportMinEvents int
)

var exportCmd = &cobra.Command{
	Use:   "export-dataset",
	Short: "Export stored events as a labeled training dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().ExportDataset(cmd.Context(), app.ExportOptions{
			CSVPath:   exportCSVPath,
			PNGPath:   exportPNGPath,
			MinEvents: exportMinEvents,
		})
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write the labeled CSV")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write the score/label PNG chart")
	exportCmd.Flags().IntVar(&exportMinEvents, "min-events", 0, "Minimum stored events required (defaults to config)")
}

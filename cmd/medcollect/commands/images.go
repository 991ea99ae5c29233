package commands

import (
	"errors"
	"log/slog"
	"time"

	"medicollector/internal/collector"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var imagesLimit *int
var imagesDelayMin *float64
var imagesDelayMax *float64

func init() {
	imagesLimit = imagesReextractCmd.Flags().Int("limit", 0, "Stop after updating this many records (0 = unlimited).")
	imagesDelayMin = imagesReextractCmd.Flags().Float64("delay-min", 1.0, "Minimum delay between requests in seconds.")
	imagesDelayMax = imagesReextractCmd.Flags().Float64("delay-max", 3.0, "Maximum delay between requests in seconds.")
	imagesCmd.AddCommand(imagesReextractCmd)
	rootCmd.AddCommand(imagesCmd)
}

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Maintains the product photos of collected records.",
}

var imagesReextractCmd = &cobra.Command{
	Use:   "reextract [--limit n]",
	Short: "Refetches entry pages for records missing a high quality photo.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, _ := setup(ctx)
		defer teardown(database)

		pages, err := encyc.NewClient(encyc.ClientOptions{
			DelayMin:    time.Duration(*imagesDelayMin * float64(time.Second)),
			DelayMax:    time.Duration(*imagesDelayMax * float64(time.Second)),
			ErrorLogDir: config.ErrorLogDir,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize page client", err)
		}

		stats, err := collector.ReextractImages(ctx, pages, config.DataDir, *imagesLimit)
		if errors.Is(err, collector.ErrBlocked) {
			slog.Warn("stopped early, requests are being blocked; retry later")
		} else if err != nil {
			serviceutil.Fatal("image reextraction failed", err)
		}

		slog.Info(
			"image reextraction finished",
			"checked", stats.Checked,
			"updated", stats.Updated,
			"removed", stats.Removed,
			"skipped", stats.Skipped,
			"failed", stats.Failed,
		)
	},
}

package commands

import (
	"errors"
	"log/slog"
	"time"

	"medicollector/internal/backfill"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var backfillStart *int64
var backfillEnd *int64
var backfillLimit *int
var backfillDelayMin *float64
var backfillDelayMax *float64
var backfillResume *bool

func init() {
	backfillStart = backfillCmd.Flags().Int64("start", backfill.DefaultStartId, "First docId of the range to crawl.")
	backfillEnd = backfillCmd.Flags().Int64("end", backfill.DefaultEndId, "Last docId of the range to crawl.")
	backfillLimit = backfillCmd.Flags().Int("limit", 0, "Stop after saving this many records (0 = unlimited).")
	backfillDelayMin = backfillCmd.Flags().Float64("delay-min", 1.0, "Minimum delay between requests in seconds.")
	backfillDelayMax = backfillCmd.Flags().Float64("delay-max", 3.0, "Maximum delay between requests in seconds.")
	backfillResume = backfillCmd.Flags().Bool("resume", false, "Continue from the position saved by the previous run.")
	rootCmd.AddCommand(backfillCmd)
}

var backfillCmd = &cobra.Command{
	Use:   "backfill [--start id] [--end id] [--limit n] [--resume]",
	Short: "Crawls the docId range directly to pick up entries keyword search missed.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, qry := setup(ctx)
		defer teardown(database)

		pages, err := encyc.NewClient(encyc.ClientOptions{
			DelayMin:    time.Duration(*backfillDelayMin * float64(time.Second)),
			DelayMax:    time.Duration(*backfillDelayMax * float64(time.Second)),
			ErrorLogDir: config.ErrorLogDir,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize page client", err)
		}

		b := backfill.New(backfill.Options{
			Pages:   pages,
			Qry:     qry,
			DataDir: config.DataDir,
			StartId: *backfillStart,
			EndId:   *backfillEnd,
			Limit:   *backfillLimit,
			Resume:  *backfillResume,
		})

		stats, err := b.Run(ctx)
		if errors.Is(err, backfill.ErrBlocked) {
			slog.Warn("stopped early, requests are being blocked; retry later with --resume")
		} else if err != nil {
			serviceutil.Fatal("backfill run failed", err)
		}

		slog.Info(
			"backfill finished",
			"attempted", stats.Attempted,
			"saved", stats.Saved,
			"invalid", stats.Invalid,
			"failed", stats.Failed,
		)
	},
}

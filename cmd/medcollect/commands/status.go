package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"medicollector/internal/collector"
	"medicollector/internal/keywords"
	"medicollector/lib/timezone"
	"medicollector/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var cleanReset *bool
var cleanMoveHtml *bool

func init() {
	cleanReset = cleanCmd.Flags().Bool("reset", false, "Also delete every collected record and all progress state.")
	cleanMoveHtml = cleanCmd.Flags().Bool("move-html", false, "Move stray html files from the data directory into the report directory.")
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(cleanCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows collection progress and api quota usage.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, qry := setup(ctx)
		defer teardown(database)

		processed, err := qry.CountProcessed(ctx)
		if err != nil {
			serviceutil.Fatal("failed to count records", err)
		}
		todo, err := qry.CountKeywordsByStatus(ctx, keywords.StatusTodo)
		if err != nil {
			serviceutil.Fatal("failed to count keywords", err)
		}
		done, err := qry.CountKeywordsByStatus(ctx, keywords.StatusDone)
		if err != nil {
			serviceutil.Fatal("failed to count keywords", err)
		}
		quota, err := qry.GetQuota(ctx, timezone.Day(timezone.Now()))
		if err != nil {
			quota = 0
		}
		invalid, err := qry.ListInvalidDocIds(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list invalid ids", err)
		}
		checkpoints, err := qry.ListCheckpoints(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list checkpoints", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendRow(table.Row{"collected records", processed})
		t.AppendRow(table.Row{"keywords todo", todo})
		t.AppendRow(table.Row{"keywords done", done})
		t.AppendRow(table.Row{"api requests today", quota})
		t.AppendRow(table.Row{"known invalid docIds", len(invalid)})
		t.Render()

		if len(checkpoints) > 0 {
			c := table.NewWriter()
			c.SetOutputMirror(os.Stdout)
			c.AppendHeader(table.Row{"Keyword", "Processed", "Updated"})
			for _, checkpoint := range checkpoints {
				c.AppendRow(table.Row{
					checkpoint.Keyword,
					checkpoint.ProcessedCount,
					time.Unix(checkpoint.UpdatedAt, 0).Format("2006-01-02 15:04"),
				})
			}
			c.Render()
		}
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean [--reset] [--move-html]",
	Short: "Clears checkpoints, and optionally wipes all collected data.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, qry := setup(ctx)
		defer teardown(database)

		err := qry.DeleteAllCheckpoints(ctx)
		if err != nil {
			serviceutil.Fatal("failed to delete checkpoints", err)
		}
		err = qry.ClearCrawlResume(ctx)
		if err != nil {
			serviceutil.Fatal("failed to clear resume position", err)
		}

		if *cleanMoveHtml {
			moved, err := collector.MoveHtmlFiles(config.DataDir, config.ReportDir)
			if err != nil {
				serviceutil.Fatal("failed to move html files", err)
			}
			fmt.Println("moved", moved, "html files to", config.ReportDir)
		}

		if *cleanReset {
			removed, err := collector.RemoveRecords(config.DataDir)
			if err != nil {
				serviceutil.Fatal("failed to delete records", err)
			}
			for _, clear := range []func(context.Context) error{
				qry.DeleteAllProcessed,
				qry.DeleteAllKeywords,
				qry.DeleteAllQuota,
				qry.DeleteAllInvalidDocIds,
			} {
				err := clear(ctx)
				if err != nil {
					serviceutil.Fatal("failed to reset progress state", err)
				}
			}
			fmt.Println("deleted", removed, "records and reset all progress state")
		}
	},
}

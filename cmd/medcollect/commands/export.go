package commands

import (
	"fmt"
	"path/filepath"

	"medicollector/internal/collector"
	"medicollector/internal/mysqlexport"
	"medicollector/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var exportCsvOut *string
var loadBatchSize *int

func init() {
	exportCsvOut = exportCsvCmd.Flags().String("out", "", "Path of the csv file to write.")
	loadBatchSize = loadMysqlCmd.Flags().Int("batch-size", mysqlexport.DefaultBatchSize, "Number of records per transaction.")
	exportCmd.AddCommand(exportCsvCmd)
	exportCmd.AddCommand(loadMysqlCmd)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports collected records to other formats.",
}

var exportCsvCmd = &cobra.Command{
	Use:   "csv [--out <path/to/export.csv>]",
	Short: "Flattens every record into a single csv file.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, _ := setup(ctx)
		defer teardown(database)

		out := *exportCsvOut
		if out == "" {
			out = filepath.Join(config.DataDir, "medicine_data.csv")
		}
		rows, err := collector.ExportCsv(ctx, config.DataDir, out)
		if err != nil {
			serviceutil.Fatal("failed to export csv", err)
		}
		fmt.Println("wrote", rows, "rows to", out)
	},
}

var loadMysqlCmd = &cobra.Command{
	Use:   "mysql [--batch-size n]",
	Short: "Loads every record into the configured mysql database.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, _ := setup(ctx)
		defer teardown(database)

		exporter, err := mysqlexport.Open(config.Mysql)
		if err != nil {
			serviceutil.Fatal("failed to connect to mysql", err)
		}
		stats, err := exporter.ExportDir(ctx, config.DataDir, *loadBatchSize)
		if err != nil {
			serviceutil.Fatal("failed to load records into mysql", err)
		}
		fmt.Printf(
			"processed %d records: %d inserted, %d skipped, %d failed\n",
			stats.Processed, stats.Inserted, stats.Skipped, stats.Failed,
		)
	},
}

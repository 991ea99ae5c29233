package commands

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"medicollector/internal/collector"
	internaldb "medicollector/internal/db"
	"medicollector/lib/restyutil"
	"medicollector/lib/scrapers/encyc"
	"medicollector/lib/scrapers/openapi"
	"medicollector/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var collectMaxItems *int
var collectWorkers *int
var collectCsv *string
var collectDumpHttp *bool

func init() {
	collectMaxItems = collectCmd.Flags().Int("max-items", 0, "Stop after saving this many records (0 = unlimited).")
	collectWorkers = collectCmd.Flags().Int("workers", 4, "Number of keywords processed in parallel.")
	collectCsv = collectCmd.Flags().String("csv", "", "Export a csv summary to this file when the run finishes.")
	collectDumpHttp = collectCmd.Flags().Bool("dump-http", false, "Dump http request/response bodies to .dev/resty for debugging.")
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect [--max-items n] [--workers n] [--csv <path/to/export.csv>]",
	Short: "Searches keywords and collects the matching medicine entries.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, qry := setup(ctx)
		defer teardown(database)

		if config.Naver.ClientId == "" || config.Naver.ClientSecret == "" {
			serviceutil.Fatal(
				"failed to read naver api credentials",
				errors.New("set NAVER_CLIENT_ID and NAVER_CLIENT_SECRET or the naver section of config.json5"),
			)
		}
		if *collectDumpHttp {
			openapi.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/openapi"))
			encyc.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(".dev/resty/encyc"))
		}

		api := openapi.NewClient(openapi.ClientOptions{
			ClientId:     config.Naver.ClientId,
			ClientSecret: config.Naver.ClientSecret,
			Quota:        internaldb.QuotaCounter{Qry: qry},
		})
		pages, err := encyc.NewClient(encyc.ClientOptions{
			DelayMin:    time.Second,
			DelayMax:    2 * time.Second,
			ErrorLogDir: config.ErrorLogDir,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize page client", err)
		}

		csvFile := *collectCsv
		if csvFile == "" {
			csvFile = filepath.Join(config.DataDir, "medicine_data.csv")
		}

		c := collector.New(collector.Options{
			Api:       api,
			Pages:     pages,
			Qry:       qry,
			DataDir:   config.DataDir,
			ReportDir: config.ReportDir,
			CsvFile:   csvFile,
			Workers:   *collectWorkers,
			MaxItems:  *collectMaxItems,
		})

		t1 := time.Now()
		stats, err := c.Run(ctx)
		if err != nil {
			serviceutil.Fatal("collection run failed", err)
		}

		slog.Info(
			"collection finished",
			"searches", stats.Searches,
			"found", stats.Found,
			"saved", stats.Saved,
			"skipped", stats.Skipped,
			"failed", stats.Failed,
			"seconds", time.Since(t1).Seconds(),
		)
	},
}

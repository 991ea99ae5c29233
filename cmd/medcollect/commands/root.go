package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"medicollector/internal/db"
	"medicollector/internal/mysqlexport"
	"medicollector/lib/configutil"
	"medicollector/lib/configutil/configsql"
	"medicollector/lib/telemetry"
	"medicollector/lib/util/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "medcollect",
	Short: "medcollect collects korean medicine data from the naver encyclopedia.",
}

var debug *bool

func init() {
	debug = rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type NaverConfig struct {
	ClientId     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

type Config struct {
	Database    configsql.Struct   `json:"database"`
	DataDir     string             `json:"data_dir"`
	ReportDir   string             `json:"report_dir"`
	ErrorLogDir string             `json:"error_log_dir"`
	Naver       NaverConfig        `json:"naver"`
	Mysql       mysqlexport.Config `json:"mysql"`
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "collected_data"
	}
	if c.ReportDir == "" {
		c.ReportDir = "reports"
	}
	if c.ErrorLogDir == "" {
		c.ErrorLogDir = "error_logs"
	}
	if c.Database.File == "" {
		c.Database.File = "medicollector.db"
	}
	// credentials usually come from the environment in deployments
	if id := os.Getenv("NAVER_CLIENT_ID"); id != "" {
		c.Naver.ClientId = id
	}
	if secret := os.Getenv("NAVER_CLIENT_SECRET"); secret != "" {
		c.Naver.ClientSecret = secret
	}
}

// setup reads the config, opens the state database and initializes
// telemetry. it exits the process on failure, commands have nothing
// sensible to do without these.
func setup(ctx context.Context) (Config, *sql.DB, *db.Queries) {
	telemetry.InitSlog(*debug)

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	config.applyDefaults()

	database, err := config.Database.OpenDB(db.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	err = telemetry.SetupFromEnv(ctx, "medcollect")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	telemetry.InstrumentPerfStats(ctx)

	return config, database, db.New(database)
}

func teardown(database *sql.DB) {
	database.Close()
	err := telemetry.Shutdown(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to shut down telemetry:", err)
	}
}

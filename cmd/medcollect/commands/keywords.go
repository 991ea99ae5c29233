package commands

import (
	"fmt"
	"os"
	"time"

	"medicollector/internal/keywords"
	"medicollector/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var keywordsGenerateMax *int

func init() {
	keywordsGenerateMax = keywordsGenerateCmd.Flags().Int("max", keywords.DefaultMaxNew, "Maximum number of keywords to add.")
	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsAddCmd)
	keywordsCmd.AddCommand(keywordsGenerateCmd)
	keywordsCmd.AddCommand(keywordsSeedCmd)
	rootCmd.AddCommand(keywordsCmd)
}

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manages the search keyword queue.",
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists every keyword and its status.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, qry := setup(ctx)
		defer teardown(database)

		rows, err := qry.ListKeywords(ctx)
		if err != nil {
			serviceutil.Fatal("failed to list keywords", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Keyword", "Status", "Added"})
		for _, row := range rows {
			t.AppendRow(table.Row{
				row.Word,
				row.Status,
				time.Unix(row.AddedAt, 0).Format("2006-01-02 15:04"),
			})
		}
		t.Render()
	},
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <keyword>...",
	Short: "Adds keywords to the queue.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, qry := setup(ctx)
		defer teardown(database)

		added, err := keywords.NewQueue(qry).Add(ctx, args)
		if err != nil {
			serviceutil.Fatal("failed to add keywords", err)
		}
		fmt.Println("added", added, "keywords")
	},
}

var keywordsGenerateCmd = &cobra.Command{
	Use:   "generate [--max n]",
	Short: "Mines new keywords out of the collected records.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		config, database, qry := setup(ctx)
		defer teardown(database)

		added, err := keywords.NewQueue(qry).GenerateFromData(ctx, config.DataDir, *keywordsGenerateMax)
		if err != nil {
			serviceutil.Fatal("failed to generate keywords", err)
		}
		fmt.Println("added", added, "keywords")
	},
}

var keywordsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Adds the built-in seed keywords to the queue.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		_, database, qry := setup(ctx)
		defer teardown(database)

		added, err := keywords.NewQueue(qry).Add(ctx, keywords.ExtensiveSeeds())
		if err != nil {
			serviceutil.Fatal("failed to seed keywords", err)
		}
		fmt.Println("added", added, "keywords")
	},
}

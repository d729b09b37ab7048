package commands

import (
	"context"
	"fmt"
	"os"
	"ufcstats/internal/config"
	"ufcstats/lib/osutil"
	"ufcstats/lib/telemetry"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	verbose    *bool
	configPath *string
)

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log at debug level and dump http exchanges to <dev_state>/resty.")
	configPath = rootCmd.PersistentFlags().String("config", "scrape_ufc_stats_config.yaml", "The yaml or json5 config file, defaults are used when it does not exist.")
}

var rootCmd = &cobra.Command{
	Use:   "ufcstats",
	Short: "ufcstats incrementally scrapes ufcstats.com into flat files and a sqlite database.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osutil.RunExitHooks()
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load(*configPath)
	if err != nil {
		osutil.Fatal("failed to load config", err)
	}
	return cfg
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

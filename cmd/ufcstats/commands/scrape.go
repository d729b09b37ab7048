package commands

import (
	"log/slog"
	"time"
	"ufcstats/internal/reconcile"
	"ufcstats/internal/store"
	"ufcstats/lib/osutil"
	"ufcstats/lib/restyutil"
	"ufcstats/lib/telemetry"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var (
	eventsOnly   *bool
	fightersOnly *bool
)

func init() {
	eventsOnly = scrapeCmd.Flags().Bool("events-only", false, "Only run the event phase.")
	fightersOnly = scrapeCmd.Flags().Bool("fighters-only", false, "Only run the fighter phase.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--events-only | --fighters-only]",
	Short: "Fetches new and incomplete events and new fighters, then updates the flat stores.",
	Run: func(cmd *cobra.Command, args []string) {
		if *eventsOnly && *fightersOnly {
			osutil.Fatal("invalid flags", errors.New("--events-only and --fighters-only are mutually exclusive"))
		}
		ctx := cmd.Context()
		cfg := loadConfig()

		var output restyutil.InstrumentOutput
		if *verbose {
			fsOutput, err := restyutil.NewFilesystemOutput("<dev_state>/resty/scrape")
			if err != nil {
				osutil.Fatal("failed to create resty output directory", err)
			}
			output = fsOutput
		}

		telemetry.InstrumentPerfStats(ctx)

		source, err := reconcile.NewScraperSource(cfg, output)
		if err != nil {
			osutil.Fatal("invalid config", err)
		}
		run := reconcile.NewRun(source, store.FromConfig(cfg))
		slog.InfoContext(ctx, "starting run", "run_id", run.ID)

		t1 := time.Now()
		if !*fightersOnly {
			report, err := run.Events(ctx)
			if err != nil {
				osutil.Fatal("event phase failed", err)
			}
			slog.InfoContext(
				ctx, "event phase done",
				"run_id", run.ID,
				"new", len(report.Delta.New),
				"incomplete", len(report.Delta.Incomplete),
				"fights", report.Fights,
				"fight_results", report.FightResults,
				"fight_stats", report.FightStats,
			)
		}
		if !*eventsOnly {
			report, err := run.Fighters(ctx)
			if err != nil {
				osutil.Fatal("fighter phase failed", err)
			}
			slog.InfoContext(
				ctx, "fighter phase done",
				"run_id", run.ID,
				"listed", report.Listed,
				"new", len(report.New),
			)
		}
		slog.InfoContext(ctx, "scraping time", "run_id", run.ID, "seconds", time.Since(t1).Seconds())
	},
}

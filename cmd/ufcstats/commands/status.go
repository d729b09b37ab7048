package commands

import (
	"ufcstats/internal/reconcile"
	"ufcstats/internal/store"
	"ufcstats/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statusOffline *bool

func init() {
	statusOffline = statusCmd.Flags().Bool("offline", false, "Only count stored rows, do not fetch the event listing.")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status [--offline]",
	Short: "Prints the row count of each store and the events the next scrape would fetch.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		stores := store.FromConfig(cfg)

		counts, err := stores.Count(ctx)
		if err != nil {
			osutil.Fatal("failed to count stores", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Store", "Path", "Rows"})
		t.AppendRows([]table.Row{
			{"events", stores.Events.Path, counts.Events},
			{"fights", stores.Fights.Path, counts.Fights},
			{"fight results", stores.FightResults.Path, counts.FightResults},
			{"fight stats", stores.FightStats.Path, counts.FightStats},
			{"fighter details", stores.FighterDetails.Path, counts.FighterDetails},
			{"fighter tott", stores.FighterTott.Path, counts.FighterTott},
		})
		t.Render()

		if *statusOffline {
			return
		}

		source, err := reconcile.NewScraperSource(cfg, nil)
		if err != nil {
			osutil.Fatal("invalid config", err)
		}
		run := reconcile.NewRun(source, stores)
		delta, err := run.PendingEvents(ctx)
		if err != nil {
			osutil.Fatal("failed to compute pending events", err)
		}

		pending := newTable()
		pending.AppendHeader(table.Row{"Event", "Date", "State"})
		for _, e := range delta.New {
			pending.AppendRow(table.Row{e.Name, e.Date, "new"})
		}
		for _, e := range delta.Incomplete {
			pending.AppendRow(table.Row{e.Name, e.Date, "incomplete"})
		}
		pending.AppendFooter(table.Row{"", "Total", len(delta.New) + len(delta.Incomplete)})
		pending.Render()
	},
}

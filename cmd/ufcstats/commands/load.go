package commands

import (
	"ufcstats/internal/db"
	"ufcstats/internal/store"
	"ufcstats/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var loadDb *string

func init() {
	loadDb = loadCmd.Flags().String("db", "", "The sqlite path or libsql url to load into, defaults to the configured database.")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load [--db <path/to/ufc.db>]",
	Short: "Creates the schema and inserts every flat store row the database does not have yet.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()
		dsn := cfg.Database
		if *loadDb != "" {
			dsn = *loadDb
		}

		database, err := db.Open(ctx, dsn)
		if err != nil {
			osutil.Fatal("failed to open db", err)
		}
		defer database.Close()

		loads, err := db.Load(ctx, db.NewMakeTx(database), store.FromConfig(cfg))
		if err != nil {
			osutil.Fatal("failed to load stores", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Table", "Rows", "Inserted"})
		for _, l := range loads {
			t.AppendRow(table.Row{l.Table, l.Rows, l.Inserted})
		}
		t.Render()
	},
}

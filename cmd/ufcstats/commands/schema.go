package commands

import (
	"log/slog"
	"ufcstats/internal/db"
	"ufcstats/lib/osutil"

	"github.com/spf13/cobra"
)

var schemaDb *string

func init() {
	schemaDb = schemaCmd.Flags().String("db", "", "The sqlite path or libsql url to create, defaults to the configured database.")
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema [--db <path/to/ufc.db>]",
	Short: "Creates the relational tables if they do not exist.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		dsn := *schemaDb
		if dsn == "" {
			dsn = loadConfig().Database
		}

		database, err := db.Open(ctx, dsn)
		if err != nil {
			osutil.Fatal("failed to create schema", err)
		}
		defer database.Close()

		slog.InfoContext(ctx, "schema ready", "db", dsn, "tables", db.Tables)
	},
}

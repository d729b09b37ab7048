package commands

import (
	"ufcstats/internal/rewrite"
	"ufcstats/internal/store"
	"ufcstats/lib/osutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var rewriteOut *string

func init() {
	rewriteOut = rewriteCmd.Flags().String("out", "rewritten", "The directory to write the restructured csv files to.")
	rootCmd.AddCommand(rewriteCmd)
}

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [--out <dir>]",
	Short: "Writes analysis friendly copies of the event and fight stores.",
	Run: func(cmd *cobra.Command, args []string) {
		outputs, err := rewrite.Rewrite(cmd.Context(), store.FromConfig(loadConfig()), *rewriteOut)
		if err != nil {
			osutil.Fatal("failed to rewrite stores", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"File", "Rows"})
		for _, o := range outputs {
			t.AppendRow(table.Row{o.Path, o.Rows})
		}
		t.Render()
	},
}

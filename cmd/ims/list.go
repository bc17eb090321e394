package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List opportunities in the current snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		opps, err := a.query.Opportunities.List(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tVISIBLE\tSLOTS\tOWNER")
		for _, o := range opps {
			fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%d/%d\t%s\n",
				o.ID(), o.Title(), o.Status(), o.Visible(),
				o.ConfirmedSlots(), o.Slots(), o.OwnerID())
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

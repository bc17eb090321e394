package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/application/command"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/application/query"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the current snapshot for broken invariants",
	Long: `check restores the latest snapshot and sweeps it for consistency:
slot accounting, visibility gating, fill status, the per-student pending
cap, and the single-accepted-offer rule. A non-zero exit means at least one
violation was found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		audit := query.NewAuditHandler(a.query, command.MaxPendingApplications)
		violations, err := audit.Handle(ctx)
		if err != nil {
			return err
		}
		if len(violations) == 0 {
			fmt.Println("ok: no violations found")
			return nil
		}
		for _, v := range violations {
			fmt.Println(v.String())
		}
		return fmt.Errorf("%d violation(s) found", len(violations))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/persistence/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load CSV seed files and write the first snapshot",
	Long: `seed reads students.csv, representatives.csv, staff.csv, and
opportunities.csv from the configured seed directory, replaces the current
collections with their contents, and writes a fresh snapshot. Existing
applications and withdrawal requests are discarded.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		dir := a.cfg.Data.SeedDir
		students, err := seed.LoadStudents(filepath.Join(dir, "students.csv"))
		if err != nil {
			return err
		}
		reps, err := seed.LoadRepresentatives(filepath.Join(dir, "representatives.csv"))
		if err != nil {
			return err
		}
		staff, err := seed.LoadStaff(filepath.Join(dir, "staff.csv"))
		if err != nil {
			return err
		}
		opps, err := seed.LoadOpportunities(filepath.Join(dir, "opportunities.csv"))
		if err != nil {
			return err
		}

		users := make([]identity.User, 0, len(students)+len(reps)+len(staff))
		for _, s := range students {
			users = append(users, s)
		}
		for _, r := range reps {
			users = append(users, r)
		}
		for _, s := range staff {
			users = append(users, s)
		}

		if err := a.mem.ReplaceAll(users, opps, nil, nil); err != nil {
			return err
		}
		if err := a.chk.SaveUsers(ctx); err != nil {
			return err
		}
		if err := a.chk.SaveOpportunities(ctx); err != nil {
			return err
		}
		if err := a.chk.SaveApplications(ctx); err != nil {
			return err
		}
		if err := a.chk.SaveWithdrawalRequests(ctx); err != nil {
			return err
		}

		fmt.Printf("seeded %d users and %d opportunities into %s\n",
			len(users), len(opps), a.cfg.Data.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

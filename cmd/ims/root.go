package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/config"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/application/command"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/application/eventhandler"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/application/query"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/policy"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/messaging"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/persistence/memory"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/persistence/snapshot"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/service"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ims",
	Short: "Internship management lifecycle engine",
	Long: `ims runs the internship management engine: opportunity approval and
visibility, application decisions and acceptance, capacity accounting, and
eligibility checks, backed by versioned JSON snapshots on disk.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles everything a subcommand needs after bootstrap.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	mem    *memory.Store
	snap   *snapshot.Store
	chk    *snapshot.Checkpoint
	engine *command.Engine
	query  *query.Deps
}

// bootstrap wires config, logging, persistence, the event bus, and the
// command engine, then restores the latest snapshot.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Options{Level: logger.ParseLevel(cfg.Logging.Level)})

	snap, err := snapshot.NewStore(cfg.Data.Dir, log)
	if err != nil {
		return nil, err
	}
	mem := memory.NewStore()
	chk := snapshot.NewCheckpoint(snap, mem)
	if err := chk.Restore(ctx); err != nil {
		return nil, fmt.Errorf("failed to restore snapshot from %s: %w", cfg.Data.Dir, err)
	}

	bus := messaging.NewInMemoryEventBus(log)
	eventhandler.NewAuditLog(log).Register(bus)

	var verifier identity.CredentialVerifier = service.NewPlainVerifier()
	if cfg.Features.BcryptCredentials {
		verifier = service.NewBcryptVerifier()
	}

	deps := command.NewDeps(command.Deps{
		Users:         mem,
		Opportunities: mem.Opportunities(),
		Applications:  mem.Applications(),
		Withdrawals:   mem.Withdrawals(),

		Policy:   policy.NewDefault(),
		Verifier: verifier,

		Checkpoint: chk,
		Bus:        bus,
		Logger:     log,

		StaffReviewedWithdrawals: cfg.Features.StaffReviewedWithdrawals,
	})

	q := query.NewDeps(query.Deps{
		Users:         mem,
		Opportunities: mem.Opportunities(),
		Applications:  mem.Applications(),
		Withdrawals:   mem.Withdrawals(),
		Policy:        deps.Policy,
		Clock:         deps.Clock,
		Guard:         deps.Guard,
	})

	return &app{
		cfg:    cfg,
		log:    log,
		mem:    mem,
		snap:   snap,
		chk:    chk,
		engine: command.NewEngine(deps),
		query:  q,
	}, nil
}

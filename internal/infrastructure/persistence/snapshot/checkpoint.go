package snapshot

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/infrastructure/persistence/memory"
)

// Checkpoint flushes the authoritative in-memory collections to the
// snapshot store. The lifecycle engine calls it after every successful
// mutation; a flush failure is reported upward while the in-memory state
// remains the source of truth for the rest of the session.
type Checkpoint struct {
	store *Store
	mem   *memory.Store
}

// NewCheckpoint wires a snapshot store to the in-memory collections.
func NewCheckpoint(store *Store, mem *memory.Store) *Checkpoint {
	return &Checkpoint{store: store, mem: mem}
}

// SaveUsers flushes the user collection.
func (c *Checkpoint) SaveUsers(ctx context.Context) error {
	return c.store.SaveUsers(ctx, c.mem.ExportUsers())
}

// SaveOpportunities flushes the opportunity collection.
func (c *Checkpoint) SaveOpportunities(ctx context.Context) error {
	return c.store.SaveOpportunities(ctx, c.mem.ExportOpportunities())
}

// SaveApplications flushes the application collection.
func (c *Checkpoint) SaveApplications(ctx context.Context) error {
	return c.store.SaveApplications(ctx, c.mem.ExportApplications())
}

// SaveWithdrawalRequests flushes the withdrawal-request collection.
func (c *Checkpoint) SaveWithdrawalRequests(ctx context.Context) error {
	return c.store.SaveWithdrawalRequests(ctx, c.mem.ExportWithdrawals())
}

// Restore loads every collection from the snapshot store into memory.
// Missing files restore as empty collections.
func (c *Checkpoint) Restore(ctx context.Context) error {
	users, err := c.store.LoadUsers(ctx)
	if err != nil {
		return err
	}
	opportunities, err := c.store.LoadOpportunities(ctx)
	if err != nil {
		return err
	}
	applications, err := c.store.LoadApplications(ctx)
	if err != nil {
		return err
	}
	withdrawals, err := c.store.LoadWithdrawalRequests(ctx)
	if err != nil {
		return err
	}
	return c.mem.ReplaceAll(users, opportunities, applications, withdrawals)
}

package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// File names inside the snapshot directory.
const (
	usersFile         = "users.json"
	opportunitiesFile = "opportunities.json"
	applicationsFile  = "applications.json"
	withdrawalsFile   = "withdrawal_requests.json"
)

// Store reads and writes the versioned collection snapshots. Loads return
// empty collections when no durable copy exists; saves are atomic
// (write-temp-then-rename) and report failures upward.
type Store struct {
	dir string
	log *logger.Logger
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string, log *logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	return &Store{dir: dir, log: log.With(logger.Component("snapshot"))}, nil
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string { return s.dir }

// ═══════════════════════════════════════════════════════════════════════════
// Loads
// ═══════════════════════════════════════════════════════════════════════════

// LoadUsers loads every identity, or an empty slice when no snapshot exists.
func (s *Store) LoadUsers(ctx context.Context) ([]identity.User, error) {
	records, err := loadFile[UserRecord](s, usersFile)
	if err != nil {
		return nil, err
	}
	users := make([]identity.User, 0, len(records))
	for _, r := range records {
		u, err := recordToUser(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot: user record %q: %w", r.ID, err)
		}
		users = append(users, u)
	}
	return users, nil
}

// LoadOpportunities loads every listing, or an empty slice.
func (s *Store) LoadOpportunities(ctx context.Context) ([]*opportunity.Opportunity, error) {
	records, err := loadFile[OpportunityRecord](s, opportunitiesFile)
	if err != nil {
		return nil, err
	}
	out := make([]*opportunity.Opportunity, 0, len(records))
	for _, r := range records {
		o, err := recordToOpportunity(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot: opportunity record %q: %w", r.ID, err)
		}
		out = append(out, o)
	}
	return out, nil
}

// LoadApplications loads every application, or an empty slice.
func (s *Store) LoadApplications(ctx context.Context) ([]*application.Application, error) {
	records, err := loadFile[ApplicationRecord](s, applicationsFile)
	if err != nil {
		return nil, err
	}
	out := make([]*application.Application, 0, len(records))
	for _, r := range records {
		a, err := recordToApplication(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot: application record %q: %w", r.ID, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// LoadWithdrawalRequests loads every withdrawal request, or an empty slice.
func (s *Store) LoadWithdrawalRequests(ctx context.Context) ([]*application.WithdrawalRequest, error) {
	records, err := loadFile[WithdrawalRecord](s, withdrawalsFile)
	if err != nil {
		return nil, err
	}
	out := make([]*application.WithdrawalRequest, 0, len(records))
	for _, r := range records {
		w, err := recordToWithdrawal(r)
		if err != nil {
			return nil, fmt.Errorf("snapshot: withdrawal record %q: %w", r.ID, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Saves
// ═══════════════════════════════════════════════════════════════════════════

// SaveUsers persists the user collection.
func (s *Store) SaveUsers(ctx context.Context, users []identity.User) error {
	records := make([]UserRecord, 0, len(users))
	for _, u := range users {
		records = append(records, userToRecord(u))
	}
	return saveFile(s, usersFile, records)
}

// SaveOpportunities persists the opportunity collection.
func (s *Store) SaveOpportunities(ctx context.Context, opportunities []*opportunity.Opportunity) error {
	records := make([]OpportunityRecord, 0, len(opportunities))
	for _, o := range opportunities {
		records = append(records, opportunityToRecord(o))
	}
	return saveFile(s, opportunitiesFile, records)
}

// SaveApplications persists the application collection.
func (s *Store) SaveApplications(ctx context.Context, applications []*application.Application) error {
	records := make([]ApplicationRecord, 0, len(applications))
	for _, a := range applications {
		records = append(records, applicationToRecord(a))
	}
	return saveFile(s, applicationsFile, records)
}

// SaveWithdrawalRequests persists the withdrawal-request collection.
func (s *Store) SaveWithdrawalRequests(ctx context.Context, withdrawals []*application.WithdrawalRequest) error {
	records := make([]WithdrawalRecord, 0, len(withdrawals))
	for _, w := range withdrawals {
		records = append(records, withdrawalToRecord(w))
	}
	return saveFile(s, withdrawalsFile, records)
}

// ═══════════════════════════════════════════════════════════════════════════
// File plumbing
// ═══════════════════════════════════════════════════════════════════════════

func loadFile[T any](s *Store, name string) ([]T, error) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// No durable copy yet: an empty collection, never a failure.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", name, err)
	}
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("snapshot: parse %s: %w", name, err)
	}
	if env.Version != SchemaVersion {
		return nil, fmt.Errorf("snapshot: %s has schema version %d, want %d", name, env.Version, SchemaVersion)
	}
	return env.Records, nil
}

func saveFile[T any](s *Store, name string, records []T) error {
	env := envelope[T]{
		Version: SchemaVersion,
		SavedAt: time.Now().UTC(),
		Records: records,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("snapshot: commit %s: %w", name, err)
	}
	s.log.Debug("snapshot written", logger.String("file", name), logger.Int("records", len(records)))
	return nil
}

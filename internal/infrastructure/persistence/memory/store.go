// Package memory holds the authoritative in-memory collections of the
// internship management system. One Store owns users, opportunities,
// applications and withdrawal requests behind a single writer-preference
// lock; the lifecycle engine is its only writer during a run.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/application"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/identity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
)

// Store implements identity.Store, opportunity.Repository,
// application.Repository and application.WithdrawalRepository over plain
// maps. Iteration order is insertion order, so listings and reports are
// deterministic.
type Store struct {
	mu sync.RWMutex

	users     map[shared.UserID]identity.User
	userOrder []shared.UserID

	opportunities map[string]*opportunity.Opportunity
	oppOrder      []string

	applications map[string]*application.Application
	appOrder     []string

	withdrawals map[string]*application.WithdrawalRequest
	wdrOrder    []string
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		users:         make(map[shared.UserID]identity.User),
		opportunities: make(map[string]*opportunity.Opportunity),
		applications:  make(map[string]*application.Application),
		withdrawals:   make(map[string]*application.WithdrawalRequest),
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// identity.Store
// ═══════════════════════════════════════════════════════════════════════════

// AddUser registers an identity at load time.
func (s *Store) AddUser(u identity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID()]; ok {
		return shared.NewDomainError("identity", "AddUser", shared.ErrConflict,
			"user id already registered: "+u.ID().String())
	}
	s.users[u.ID()] = u
	s.userOrder = append(s.userOrder, u.ID())
	return nil
}

// ListAll implements identity.Store.
func (s *Store) ListAll(ctx context.Context) ([]identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]identity.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out, nil
}

// GetByID implements identity.Store.
func (s *Store) GetByID(ctx context.Context, id shared.UserID) (identity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, shared.NewDomainError("identity", "GetByID", shared.ErrNotFound,
			"no user with id "+id.String())
	}
	return u, nil
}

// GetStudent implements identity.Store.
func (s *Store) GetStudent(ctx context.Context, id shared.UserID) (*identity.Student, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st, ok := u.(*identity.Student)
	if !ok {
		return nil, shared.NewDomainError("identity", "GetStudent", shared.ErrForbidden,
			id.String()+" is not a student")
	}
	return st, nil
}

// GetRepresentative implements identity.Store.
func (s *Store) GetRepresentative(ctx context.Context, id shared.UserID) (*identity.CompanyRepresentative, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rep, ok := u.(*identity.CompanyRepresentative)
	if !ok {
		return nil, shared.NewDomainError("identity", "GetRepresentative", shared.ErrForbidden,
			id.String()+" is not a company representative")
	}
	return rep, nil
}

// GetStaff implements identity.Store.
func (s *Store) GetStaff(ctx context.Context, id shared.UserID) (*identity.CareerCenterStaff, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	staff, ok := u.(*identity.CareerCenterStaff)
	if !ok {
		return nil, shared.NewDomainError("identity", "GetStaff", shared.ErrForbidden,
			id.String()+" is not career center staff")
	}
	return staff, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// opportunity.Repository
// ═══════════════════════════════════════════════════════════════════════════

// GetByOpportunityID backs the Opportunities view's GetByID.
func (s *Store) GetByOpportunityID(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.opportunities[id]
	if !ok {
		return nil, shared.NewDomainError("opportunity", "GetByID", shared.ErrNotFound,
			"no opportunity with id "+id)
	}
	return o, nil
}

// Opportunities returns the opportunity.Repository view of the store.
func (s *Store) Opportunities() opportunity.Repository {
	return opportunityView{s}
}

type opportunityView struct{ s *Store }

func (v opportunityView) GetByID(ctx context.Context, id string) (*opportunity.Opportunity, error) {
	return v.s.GetByOpportunityID(ctx, id)
}

func (v opportunityView) List(ctx context.Context) ([]*opportunity.Opportunity, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*opportunity.Opportunity, 0, len(v.s.oppOrder))
	for _, id := range v.s.oppOrder {
		out = append(out, v.s.opportunities[id])
	}
	return out, nil
}

func (v opportunityView) ListByOwner(ctx context.Context, ownerID shared.UserID) ([]*opportunity.Opportunity, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*opportunity.Opportunity
	for _, id := range v.s.oppOrder {
		if o := v.s.opportunities[id]; o.IsOwnedBy(ownerID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (v opportunityView) Add(ctx context.Context, o *opportunity.Opportunity) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.opportunities[o.ID()]; ok {
		return shared.NewDomainError("opportunity", "Add", shared.ErrConflict,
			"opportunity id already exists: "+o.ID())
	}
	v.s.opportunities[o.ID()] = o
	v.s.oppOrder = append(v.s.oppOrder, o.ID())
	return nil
}

func (v opportunityView) Remove(ctx context.Context, id string) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.opportunities[id]; !ok {
		return shared.NewDomainError("opportunity", "Remove", shared.ErrNotFound,
			"no opportunity with id "+id)
	}
	delete(v.s.opportunities, id)
	for i, existing := range v.s.oppOrder {
		if existing == id {
			v.s.oppOrder = append(v.s.oppOrder[:i], v.s.oppOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (v opportunityView) Exists(ctx context.Context, id string) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	_, ok := v.s.opportunities[id]
	return ok, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// application.Repository
// ═══════════════════════════════════════════════════════════════════════════

// Applications returns the application.Repository view of the store.
func (s *Store) Applications() application.Repository {
	return applicationView{s}
}

type applicationView struct{ s *Store }

func (v applicationView) GetByID(ctx context.Context, id string) (*application.Application, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	a, ok := v.s.applications[id]
	if !ok {
		return nil, shared.NewDomainError("application", "GetByID", shared.ErrNotFound,
			"no application with id "+id)
	}
	return a, nil
}

func (v applicationView) List(ctx context.Context) ([]*application.Application, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*application.Application, 0, len(v.s.appOrder))
	for _, id := range v.s.appOrder {
		out = append(out, v.s.applications[id])
	}
	return out, nil
}

func (v applicationView) ListByStudent(ctx context.Context, studentID shared.UserID) ([]*application.Application, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*application.Application
	for _, id := range v.s.appOrder {
		if a := v.s.applications[id]; a.IsOwnedBy(studentID) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (v applicationView) ListByOpportunity(ctx context.Context, opportunityID string) ([]*application.Application, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*application.Application
	for _, id := range v.s.appOrder {
		if a := v.s.applications[id]; a.OpportunityID() == opportunityID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (v applicationView) Add(ctx context.Context, a *application.Application) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.applications[a.ID()]; ok {
		return shared.NewDomainError("application", "Add", shared.ErrConflict,
			"application id already exists: "+a.ID())
	}
	v.s.applications[a.ID()] = a
	v.s.appOrder = append(v.s.appOrder, a.ID())
	return nil
}

func (v applicationView) Exists(ctx context.Context, id string) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	_, ok := v.s.applications[id]
	return ok, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// application.WithdrawalRepository
// ═══════════════════════════════════════════════════════════════════════════

// Withdrawals returns the application.WithdrawalRepository view of the store.
func (s *Store) Withdrawals() application.WithdrawalRepository {
	return withdrawalView{s}
}

type withdrawalView struct{ s *Store }

func (v withdrawalView) GetByID(ctx context.Context, id string) (*application.WithdrawalRequest, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	w, ok := v.s.withdrawals[id]
	if !ok {
		return nil, shared.NewDomainError("withdrawal", "GetByID", shared.ErrNotFound,
			"no withdrawal request with id "+id)
	}
	return w, nil
}

func (v withdrawalView) List(ctx context.Context) ([]*application.WithdrawalRequest, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*application.WithdrawalRequest, 0, len(v.s.wdrOrder))
	for _, id := range v.s.wdrOrder {
		out = append(out, v.s.withdrawals[id])
	}
	return out, nil
}

func (v withdrawalView) ListPending(ctx context.Context) ([]*application.WithdrawalRequest, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*application.WithdrawalRequest
	for _, id := range v.s.wdrOrder {
		if w := v.s.withdrawals[id]; w.IsPending() {
			out = append(out, w)
		}
	}
	return out, nil
}

func (v withdrawalView) Add(ctx context.Context, w *application.WithdrawalRequest) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.withdrawals[w.ID()]; ok {
		return shared.NewDomainError("withdrawal", "Add", shared.ErrConflict,
			"withdrawal request id already exists: "+w.ID())
	}
	v.s.withdrawals[w.ID()] = w
	v.s.wdrOrder = append(v.s.wdrOrder, w.ID())
	return nil
}

func (v withdrawalView) Exists(ctx context.Context, id string) (bool, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	_, ok := v.s.withdrawals[id]
	return ok, nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Bulk load / export (snapshot boundary)
// ═══════════════════════════════════════════════════════════════════════════

// ReplaceAll swaps in whole collections at boot. Users come sorted by
// canonical id so a seed file's ordering is not load-bearing.
func (s *Store) ReplaceAll(users []identity.User, opportunities []*opportunity.Opportunity,
	applications []*application.Application, withdrawals []*application.WithdrawalRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[shared.UserID]identity.User, len(users))
	s.userOrder = s.userOrder[:0]
	sorted := append([]identity.User(nil), users...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID() < sorted[j].ID() })
	for _, u := range sorted {
		if _, ok := s.users[u.ID()]; ok {
			return shared.NewDomainError("identity", "ReplaceAll", shared.ErrConflict,
				"duplicate user id: "+u.ID().String())
		}
		s.users[u.ID()] = u
		s.userOrder = append(s.userOrder, u.ID())
	}

	s.opportunities = make(map[string]*opportunity.Opportunity, len(opportunities))
	s.oppOrder = s.oppOrder[:0]
	for _, o := range opportunities {
		if _, ok := s.opportunities[o.ID()]; ok {
			return shared.NewDomainError("opportunity", "ReplaceAll", shared.ErrConflict,
				"duplicate opportunity id: "+o.ID())
		}
		s.opportunities[o.ID()] = o
		s.oppOrder = append(s.oppOrder, o.ID())
	}

	s.applications = make(map[string]*application.Application, len(applications))
	s.appOrder = s.appOrder[:0]
	for _, a := range applications {
		if _, ok := s.applications[a.ID()]; ok {
			return shared.NewDomainError("application", "ReplaceAll", shared.ErrConflict,
				"duplicate application id: "+a.ID())
		}
		s.applications[a.ID()] = a
		s.appOrder = append(s.appOrder, a.ID())
	}

	s.withdrawals = make(map[string]*application.WithdrawalRequest, len(withdrawals))
	s.wdrOrder = s.wdrOrder[:0]
	for _, w := range withdrawals {
		if _, ok := s.withdrawals[w.ID()]; ok {
			return shared.NewDomainError("withdrawal", "ReplaceAll", shared.ErrConflict,
				"duplicate withdrawal request id: "+w.ID())
		}
		s.withdrawals[w.ID()] = w
		s.wdrOrder = append(s.wdrOrder, w.ID())
	}
	return nil
}

// ExportUsers returns every identity in store order, for snapshotting.
func (s *Store) ExportUsers() []identity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]identity.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		out = append(out, s.users[id])
	}
	return out
}

// ExportOpportunities returns every listing in insertion order.
func (s *Store) ExportOpportunities() []*opportunity.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*opportunity.Opportunity, 0, len(s.oppOrder))
	for _, id := range s.oppOrder {
		out = append(out, s.opportunities[id])
	}
	return out
}

// ExportApplications returns every application in insertion order.
func (s *Store) ExportApplications() []*application.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*application.Application, 0, len(s.appOrder))
	for _, id := range s.appOrder {
		out = append(out, s.applications[id])
	}
	return out
}

// ExportWithdrawals returns every withdrawal request in insertion order.
func (s *Store) ExportWithdrawals() []*application.WithdrawalRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*application.WithdrawalRequest, 0, len(s.wdrOrder))
	for _, id := range s.wdrOrder {
		out = append(out, s.withdrawals[id])
	}
	return out
}

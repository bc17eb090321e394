package command

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/opportunity"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// ═══════════════════════════════════════════════════════════════════════════
// POST OPPORTUNITY COMMAND
// A representative creates a listing. It starts PENDING and invisible;
// only a staff review can publish it.
// ═══════════════════════════════════════════════════════════════════════════

// PostOpportunityCommand carries the new listing's draft.
type PostOpportunityCommand struct {
	ActorID shared.UserID
	Draft   opportunity.Draft
}

// Validate validates the command.
func (c PostOpportunityCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("opportunity", "Post", shared.ErrValidation, "actor is required")
	}
	return c.Draft.Validate()
}

// PostOpportunityResult carries the created listing.
type PostOpportunityResult struct {
	Opportunity *opportunity.Opportunity
}

// PostOpportunityHandler creates listings.
type PostOpportunityHandler struct {
	deps *Deps
}

// NewPostOpportunityHandler creates the handler.
func NewPostOpportunityHandler(deps *Deps) *PostOpportunityHandler {
	return &PostOpportunityHandler{deps: deps}
}

// Handle executes the command.
func (h *PostOpportunityHandler) Handle(ctx context.Context, cmd PostOpportunityCommand) (*PostOpportunityResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	rep, err := h.deps.Users.GetRepresentative(ctx, cmd.ActorID)
	if err != nil {
		return nil, err
	}

	id, err := h.deps.OpportunityIDs.Next(func(candidate string) (bool, error) {
		return h.deps.Opportunities.Exists(ctx, candidate)
	})
	if err != nil {
		return nil, shared.WrapError("opportunity", "Post", shared.ErrConflict,
			"could not allocate a unique opportunity id", err)
	}

	o, err := opportunity.New(id, rep.ID(), cmd.Draft)
	if err != nil {
		return nil, err
	}
	if err := h.deps.Opportunities.Add(ctx, o); err != nil {
		return nil, err
	}

	h.deps.Logger.Info("opportunity posted",
		logger.Actor(rep.ID().String()),
		logger.OpportunityID(o.ID()),
		logger.Slots(o.ConfirmedSlots(), o.Slots()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventOpportunityPosted, o.ID(), rep.ID()).
		WithField("title", o.Title()))

	return &PostOpportunityResult{Opportunity: o}, h.deps.persist(ctx, colOpportunities)
}

// ═══════════════════════════════════════════════════════════════════════════
// EDIT OPPORTUNITY COMMAND
// Any edit revokes prior approval: the listing returns to PENDING and is
// hidden until staff review it again.
// ═══════════════════════════════════════════════════════════════════════════

// EditOpportunityCommand replaces a listing's mutable fields.
type EditOpportunityCommand struct {
	ActorID       shared.UserID
	OpportunityID string
	Draft         opportunity.Draft
}

// Validate validates the command.
func (c EditOpportunityCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("opportunity", "Edit", shared.ErrValidation, "actor is required")
	}
	if c.OpportunityID == "" {
		return shared.NewDomainError("opportunity", "Edit", shared.ErrValidation, "opportunity id is required")
	}
	return c.Draft.Validate()
}

// EditOpportunityHandler edits listings.
type EditOpportunityHandler struct {
	deps *Deps
}

// NewEditOpportunityHandler creates the handler.
func NewEditOpportunityHandler(deps *Deps) *EditOpportunityHandler {
	return &EditOpportunityHandler{deps: deps}
}

// Handle executes the command.
func (h *EditOpportunityHandler) Handle(ctx context.Context, cmd EditOpportunityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	rep, err := h.deps.Users.GetRepresentative(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	o, err := h.deps.Opportunities.GetByID(ctx, cmd.OpportunityID)
	if err != nil {
		return err
	}
	if !o.IsOwnedBy(rep.ID()) {
		return shared.NewDomainError("opportunity", "Edit", shared.ErrForbidden,
			"only the owning representative may edit this opportunity")
	}
	if err := o.ApplyEdit(cmd.Draft); err != nil {
		return err
	}

	h.deps.Logger.Info("opportunity edited, approval revoked",
		logger.Actor(rep.ID().String()),
		logger.OpportunityID(o.ID()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventOpportunityEdited, o.ID(), rep.ID()))

	return h.deps.persist(ctx, colOpportunities)
}

// ═══════════════════════════════════════════════════════════════════════════
// DELETE OPPORTUNITY COMMAND
// Listings are deletable only while PENDING or REJECTED, and only by the
// owner. An approved listing with live applications can never vanish.
// ═══════════════════════════════════════════════════════════════════════════

// DeleteOpportunityCommand removes a listing.
type DeleteOpportunityCommand struct {
	ActorID       shared.UserID
	OpportunityID string
}

// Validate validates the command.
func (c DeleteOpportunityCommand) Validate() error {
	if c.ActorID.IsEmpty() {
		return shared.NewDomainError("opportunity", "Delete", shared.ErrValidation, "actor is required")
	}
	if c.OpportunityID == "" {
		return shared.NewDomainError("opportunity", "Delete", shared.ErrValidation, "opportunity id is required")
	}
	return nil
}

// DeleteOpportunityHandler removes listings.
type DeleteOpportunityHandler struct {
	deps *Deps
}

// NewDeleteOpportunityHandler creates the handler.
func NewDeleteOpportunityHandler(deps *Deps) *DeleteOpportunityHandler {
	return &DeleteOpportunityHandler{deps: deps}
}

// Handle executes the command.
func (h *DeleteOpportunityHandler) Handle(ctx context.Context, cmd DeleteOpportunityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	h.deps.Guard.Lock()
	defer h.deps.Guard.Unlock()

	rep, err := h.deps.Users.GetRepresentative(ctx, cmd.ActorID)
	if err != nil {
		return err
	}
	o, err := h.deps.Opportunities.GetByID(ctx, cmd.OpportunityID)
	if err != nil {
		return err
	}
	if !o.IsOwnedBy(rep.ID()) {
		return shared.NewDomainError("opportunity", "Delete", shared.ErrForbidden,
			"only the owning representative may delete this opportunity")
	}
	if !o.IsDeletable() {
		return shared.NewDomainError("opportunity", "Delete", shared.ErrInvalidState,
			"only a pending or rejected opportunity can be deleted, current status is "+o.Status().String())
	}
	if o.ConfirmedSlots() > 0 {
		// An edit can drop a listing back to PENDING with acceptances
		// outstanding; those students still hold a slot here.
		return shared.NewDomainError("opportunity", "Delete", shared.ErrInvalidState,
			"opportunity has confirmed slots and cannot be deleted")
	}
	if err := h.deps.Opportunities.Remove(ctx, o.ID()); err != nil {
		return err
	}

	h.deps.Logger.Info("opportunity deleted",
		logger.Actor(rep.ID().String()),
		logger.OpportunityID(o.ID()))
	h.deps.publish(ctx, shared.NewBaseEvent(shared.EventOpportunityDeleted, o.ID(), rep.ID()))

	return h.deps.persist(ctx, colOpportunities)
}

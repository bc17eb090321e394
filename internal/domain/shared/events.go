// Package shared contains common domain types, errors, events, and value objects
// that are used across all domain packages.
package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Each event records something significant that happened
// inside the lifecycle engine; subscribers must never mutate domain state.
const (
	// Opportunity events
	EventOpportunityPosted   EventType = "opportunity.posted"
	EventOpportunityEdited   EventType = "opportunity.edited"
	EventOpportunityDeleted  EventType = "opportunity.deleted"
	EventOpportunityApproved EventType = "opportunity.approved"
	EventOpportunityRejected EventType = "opportunity.rejected"
	EventOpportunityFilled   EventType = "opportunity.filled"
	EventOpportunityReopened EventType = "opportunity.reopened"

	// Application events
	EventApplicationSubmitted EventType = "application.submitted"
	EventApplicationDecided   EventType = "application.decided"
	EventOfferAccepted        EventType = "application.offer_accepted"
	EventApplicationWithdrawn EventType = "application.withdrawn"

	// Withdrawal review events
	EventWithdrawalRequested EventType = "withdrawal.requested"
	EventWithdrawalReviewed  EventType = "withdrawal.reviewed"

	// Identity events
	EventUserLoggedIn         EventType = "identity.logged_in"
	EventCredentialChanged    EventType = "identity.credential_changed"
	EventRepresentativeStatus EventType = "identity.representative_reviewed"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventID returns the unique identifier of this event instance.
	EventID() string

	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the entity that produced this event.
	AggregateID() string

	// Payload returns the event data for structured logging.
	Payload() map[string]any
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
	Actor       string    `json:"actor,omitempty"`
	Fields      map[string]any
}

// NewBaseEvent creates a new base event for the given aggregate.
func NewBaseEvent(eventType EventType, aggregateID string, actor UserID) BaseEvent {
	return BaseEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
		Actor:       actor.String(),
	}
}

// WithField attaches an extra payload field.
func (e BaseEvent) WithField(key string, value any) BaseEvent {
	if e.Fields == nil {
		e.Fields = make(map[string]any, 2)
	}
	e.Fields[key] = value
	return e
}

// EventID implements Event.
func (e BaseEvent) EventID() string { return e.ID }

// EventType implements Event.
func (e BaseEvent) EventType() EventType { return e.Type }

// OccurredAt implements Event.
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// AggregateID implements Event.
func (e BaseEvent) AggregateID() string { return e.AggregateId }

// Payload implements Event.
func (e BaseEvent) Payload() map[string]any {
	payload := map[string]any{
		"aggregate_id": e.AggregateId,
	}
	if e.Actor != "" {
		payload["actor"] = e.Actor
	}
	for k, v := range e.Fields {
		payload[k] = v
	}
	return payload
}

// EventHandler processes a published event. Handlers run synchronously on
// the publisher's goroutine; a handler error is reported, not fatal.
type EventHandler func(ctx context.Context, event Event) error

// EventBus is the contract for publishing and subscribing to domain events.
type EventBus interface {
	// Publish delivers events to all matching subscribers.
	Publish(ctx context.Context, events ...Event) error

	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler)

	// SubscribeAll registers a handler for every event type.
	SubscribeAll(handler EventHandler)
}

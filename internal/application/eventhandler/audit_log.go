// Package eventhandler holds the subscribers wired to the in-process event
// bus at startup.
package eventhandler

import (
	"context"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// AuditLog writes one structured line per domain event, giving a replayable
// trail of every lifecycle transition in the session.
type AuditLog struct {
	log *logger.Logger
}

// NewAuditLog creates the subscriber.
func NewAuditLog(log *logger.Logger) *AuditLog {
	return &AuditLog{log: log.With(logger.Component("audit"))}
}

// Register subscribes the audit log to every event type.
func (a *AuditLog) Register(bus shared.EventBus) {
	bus.SubscribeAll(a.Handle)
}

// Handle implements shared.EventHandler.
func (a *AuditLog) Handle(_ context.Context, event shared.Event) error {
	fields := []logger.Field{
		logger.String("event_id", event.EventID()),
		logger.String("event_type", string(event.EventType())),
		logger.String("aggregate_id", event.AggregateID()),
		logger.Time("occurred_at", event.OccurredAt()),
	}
	for k, v := range event.Payload() {
		fields = append(fields, logger.F(k, v))
	}
	a.log.Info("domain event", fields...)
	return nil
}

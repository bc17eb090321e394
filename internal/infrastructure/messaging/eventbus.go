// Package messaging implements the in-memory event bus of the internship
// management system. Delivery is synchronous on the publisher's goroutine:
// the engine is a single logical actor, so there is no async worker pool.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

// InMemoryEventBus is a synchronous implementation of shared.EventBus.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	log         *logger.Logger
	closed      bool
}

// NewInMemoryEventBus creates a new bus.
func NewInMemoryEventBus(log *logger.Logger) *InMemoryEventBus {
	if log == nil {
		log = logger.Default()
	}
	return &InMemoryEventBus{
		handlers: make(map[shared.EventType][]shared.EventHandler),
		log:      log.With(logger.Component("eventbus")),
	}
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll registers a handler for every event type.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.allHandlers = append(b.allHandlers, handler)
}

// Publish delivers each event to all matching subscribers in registration
// order. Handler failures are collected and logged; they never abort the
// mutation that produced the event.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.Event) error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return errors.New("messaging: event bus is closed")
	}
	// Snapshot the handler sets so delivery runs without the lock.
	typed := make(map[shared.EventType][]shared.EventHandler, len(b.handlers))
	for t, hs := range b.handlers {
		typed[t] = append([]shared.EventHandler(nil), hs...)
	}
	all := append([]shared.EventHandler(nil), b.allHandlers...)
	b.mu.RUnlock()

	var errs []error
	for _, event := range events {
		for _, handler := range typed[event.EventType()] {
			if err := handler(ctx, event); err != nil {
				b.log.Warn("event handler failed",
					logger.String("event_type", string(event.EventType())),
					logger.String("event_id", event.EventID()),
					logger.Err(err))
				errs = append(errs, fmt.Errorf("%s: %w", event.EventType(), err))
			}
		}
		for _, handler := range all {
			if err := handler(ctx, event); err != nil {
				b.log.Warn("event handler failed",
					logger.String("event_type", string(event.EventType())),
					logger.String("event_id", event.EventID()),
					logger.Err(err))
				errs = append(errs, fmt.Errorf("%s: %w", event.EventType(), err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close stops the bus; further publishes fail.
func (b *InMemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}

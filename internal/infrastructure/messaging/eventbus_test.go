package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/internal/domain/shared"
	"github.com/joegoldberg2210/sc2002-internship-management-system-sub000/pkg/logger"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{Level: logger.LevelError})
}

func TestPublish_DeliversToTypedSubscriber(t *testing.T) {
	bus := NewInMemoryEventBus(quietLogger())

	var got []shared.Event
	bus.Subscribe(shared.EventOpportunityPosted, func(_ context.Context, e shared.Event) error {
		got = append(got, e)
		return nil
	})

	posted := shared.NewBaseEvent(shared.EventOpportunityPosted, "ITP-000001", shared.MustUserID("REP1"))
	decided := shared.NewBaseEvent(shared.EventApplicationDecided, "APP-000001", shared.MustUserID("REP1"))
	require.NoError(t, bus.Publish(context.Background(), posted, decided))

	require.Len(t, got, 1)
	assert.Equal(t, "ITP-000001", got[0].AggregateID())
}

func TestPublish_DeliversToWildcardSubscriber(t *testing.T) {
	bus := NewInMemoryEventBus(quietLogger())

	count := 0
	bus.SubscribeAll(func(context.Context, shared.Event) error {
		count++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(),
		shared.NewBaseEvent(shared.EventOpportunityPosted, "ITP-000001", shared.MustUserID("REP1")),
		shared.NewBaseEvent(shared.EventApplicationDecided, "APP-000001", shared.MustUserID("REP1")),
	))
	assert.Equal(t, 2, count)
}

func TestPublish_JoinsHandlerErrors(t *testing.T) {
	bus := NewInMemoryEventBus(quietLogger())

	boom := errors.New("boom")
	delivered := false
	bus.SubscribeAll(func(context.Context, shared.Event) error { return boom })
	bus.SubscribeAll(func(context.Context, shared.Event) error {
		delivered = true
		return nil
	})

	err := bus.Publish(context.Background(),
		shared.NewBaseEvent(shared.EventOpportunityPosted, "ITP-000001", shared.MustUserID("REP1")))

	assert.ErrorIs(t, err, boom)
	assert.True(t, delivered, "a failing handler must not block the others")
}

func TestPublish_AfterCloseFails(t *testing.T) {
	bus := NewInMemoryEventBus(quietLogger())

	count := 0
	bus.SubscribeAll(func(context.Context, shared.Event) error {
		count++
		return nil
	})
	bus.Close()

	err := bus.Publish(context.Background(),
		shared.NewBaseEvent(shared.EventOpportunityPosted, "ITP-000001", shared.MustUserID("REP1")))
	require.Error(t, err)
	assert.Equal(t, 0, count)
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/cards-api/internal/domain"
	"github.com/phrazzld/cards-api/internal/events"
	"github.com/phrazzld/cards-api/internal/generation"
	"github.com/phrazzld/cards-api/internal/platform/memory"
	"github.com/phrazzld/cards-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []*events.CardEvent
	err    error
}

func (e *recordingEmitter) EmitEvent(_ context.Context, event *events.CardEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *recordingEmitter) types() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.events))
	for _, ev := range e.events {
		out = append(out, ev.Type)
	}
	return out
}

func TestCardEvents_EmittedAfterEachWrite(t *testing.T) {
	emitter := &recordingEmitter{}
	svc, err := NewCardService(memory.NewCardStore(nil), generation.NewSequenceGenerator(testNumber), nil,
		WithEventEmitter(emitter))
	require.NoError(t, err)

	ctx := store.WithActor(context.Background(), "ops-alice")
	require.NoError(t, svc.CreateCard(ctx, testMobile))

	// Failed writes emit nothing.
	assert.Error(t, svc.CreateCard(ctx, testMobile))
	_, err = svc.FetchCard(ctx, testMobile)
	require.NoError(t, err)

	updated, err := svc.UpdateCard(ctx, domain.CardDTO{
		MobileNumber:    testMobile,
		CardNumber:      testNumber,
		CardType:        "Debit Card",
		TotalLimit:      50000,
		AmountUsed:      1000,
		AvailableAmount: 49000,
	})
	require.NoError(t, err)
	require.True(t, updated)

	deleted, err := svc.DeleteCard(ctx, testMobile)
	require.NoError(t, err)
	require.True(t, deleted)

	assert.Equal(t, []string{events.CardCreated, events.CardUpdated, events.CardDeleted}, emitter.types())

	update := emitter.events[1]
	assert.Equal(t, "ops-alice", update.Actor)
	assert.Equal(t, testNumber, update.CardNumber)
	assert.Equal(t, 1000, update.AmountUsed)
	assert.Equal(t, emitter.events[0].CardID, emitter.events[2].CardID)
}

func TestCardEvents_EmitFailureDoesNotFailWrite(t *testing.T) {
	emitter := &recordingEmitter{err: errors.New("broker unavailable")}
	cardStore := memory.NewCardStore(nil)
	svc, err := NewCardService(cardStore, generation.NewSequenceGenerator(testNumber), nil,
		WithEventEmitter(emitter))
	require.NoError(t, err)

	require.NoError(t, svc.CreateCard(context.Background(), testMobile))
	assert.Equal(t, 1, cardStore.Len())

	require.Len(t, emitter.events, 1)
	assert.Equal(t, store.SystemActor, emitter.events[0].Actor)
}

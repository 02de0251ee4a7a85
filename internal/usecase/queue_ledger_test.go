package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func someItems(orderID string) []domain.CartLine {
	return []domain.CartLine{{
		Product:  domain.Product{ID: "p-1", Name: "Espresso", Price: 18000},
		Quantity: 2,
		OrderID:  orderID,
	}}
}

func TestQueueNumbersStrictlyIncrease(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())

	t1, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)
	t2, err := l.Enqueue(ctx, someItems("o-2"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), t1.Number)
	assert.Equal(t, int64(2), t2.Number)

	// deleting a ticket never frees its number
	require.NoError(t, l.Remove(ctx, t2.ID))
	t3, err := l.Enqueue(ctx, someItems("o-3"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), t3.Number)
}

func TestQueueCounterSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := &memTicketStore{snap: QueueSnapshot{LastNumber: 5}}

	l := NewQueueLedger(ctx, store, discardLogger())
	ticket, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), ticket.Number)
}

func TestQueueLedgerStartsEmptyOnCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	store := &memTicketStore{loadErr: ErrCorruptSnapshot}

	l := NewQueueLedger(ctx, store, discardLogger())
	assert.Empty(t, l.CurrentTickets())

	store.loadErr = nil
	ticket, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ticket.Number)
}

func TestEnqueueDefaultsEstimate(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())

	ticket, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultEstimateSeconds), ticket.EstimatedSeconds)
	assert.Equal(t, domain.TicketWaiting, ticket.Status)

	ticket, err = l.Enqueue(ctx, someItems("o-2"), 120)
	require.NoError(t, err)
	assert.Equal(t, int64(120), ticket.EstimatedSeconds)
}

func TestEnqueuePersistsSnapshot(t *testing.T) {
	ctx := context.Background()
	store := &memTicketStore{}
	l := NewQueueLedger(ctx, store, discardLogger())

	_, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.LastNumber)
	require.Len(t, snap.Tickets, 1)
	assert.Equal(t, "o-1", snap.Tickets[0].Items[0].OrderID)
}

func TestSetStatusIsFreeForm(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())
	ticket, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)

	// any order of states is allowed, including going backwards
	for _, s := range []domain.TicketStatus{
		domain.TicketReady, domain.TicketWaiting, domain.TicketCompleted, domain.TicketPreparing,
	} {
		got, err := l.SetStatus(ctx, ticket.ID, s)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}

	_, err = l.SetStatus(ctx, ticket.ID, domain.TicketStatus("burnt"))
	assert.ErrorIs(t, err, ErrInvalidTicketStatus)

	_, err = l.SetStatus(ctx, "nope", domain.TicketReady)
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestSetEstimate(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())
	ticket, err := l.Enqueue(ctx, someItems("o-1"), 0)
	require.NoError(t, err)

	got, err := l.SetEstimate(ctx, ticket.ID, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(90), got.EstimatedSeconds)

	_, err = l.SetEstimate(ctx, ticket.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidEstimate)
}

func TestCurrentTicketsHideCompleted(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())
	t1, _ := l.Enqueue(ctx, someItems("o-1"), 0)
	t2, _ := l.Enqueue(ctx, someItems("o-2"), 0)

	_, err := l.SetStatus(ctx, t1.ID, domain.TicketCompleted)
	require.NoError(t, err)

	current := l.CurrentTickets()
	require.Len(t, current, 1)
	assert.Equal(t, t2.ID, current[0].ID)

	// completed tickets are filtered, not deleted
	assert.Equal(t, 1, l.Stats().Completed)
}

func TestStatsTotalExcludesCompleted(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())
	t1, _ := l.Enqueue(ctx, someItems("o-1"), 0)
	t2, _ := l.Enqueue(ctx, someItems("o-2"), 0)
	t3, _ := l.Enqueue(ctx, someItems("o-3"), 0)
	_, _ = l.Enqueue(ctx, someItems("o-4"), 0)

	_, _ = l.SetStatus(ctx, t1.ID, domain.TicketPreparing)
	_, _ = l.SetStatus(ctx, t2.ID, domain.TicketReady)
	_, _ = l.SetStatus(ctx, t3.ID, domain.TicketCompleted)

	s := l.Stats()
	assert.Equal(t, 1, s.Waiting)
	assert.Equal(t, 1, s.Preparing)
	assert.Equal(t, 1, s.Ready)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 3, s.Total)
}

func TestTicketForOrder(t *testing.T) {
	ctx := context.Background()
	l := NewQueueLedger(ctx, &memTicketStore{}, discardLogger())
	ticket, _ := l.Enqueue(ctx, someItems("o-1"), 0)

	got, ok := l.TicketForOrder("o-1")
	require.True(t, ok)
	assert.Equal(t, ticket.ID, got.ID)

	_, ok = l.TicketForOrder("o-unknown")
	assert.False(t, ok)

	// a completed ticket is no longer current
	_, err := l.SetStatus(ctx, ticket.ID, domain.TicketCompleted)
	require.NoError(t, err)
	_, ok = l.TicketForOrder("o-1")
	assert.False(t, ok)
}

func TestEnqueueSurfacesPersistError(t *testing.T) {
	ctx := context.Background()
	store := &memTicketStore{}
	l := NewQueueLedger(ctx, store, discardLogger())

	store.saveErr = errors.New("redis down")
	_, err := l.Enqueue(ctx, someItems("o-1"), 0)
	assert.Error(t, err)
}

func TestLedgerRestoresTicketsFromSnapshot(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	store := &memTicketStore{snap: QueueSnapshot{
		Tickets: []domain.QueueTicket{{
			ID: "t-1", Number: 7, Items: someItems("o-1"),
			CreatedAt: created, EstimatedSeconds: 300, Status: domain.TicketPreparing,
		}},
		LastNumber: 7,
	}}

	l := NewQueueLedger(ctx, store, discardLogger())
	current := l.CurrentTickets()
	require.Len(t, current, 1)
	assert.Equal(t, int64(7), current[0].Number)
	assert.Equal(t, domain.TicketPreparing, current[0].Status)
	assert.Equal(t, created, current[0].CreatedAt)
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLifecycle(store OrderStore, pub EventPublisher) (*OrderLifecycle, *OrdersCache) {
	cache := NewOrdersCache()
	l := NewOrderLifecycle(store, cache, pub, "pos-1")
	return l, cache
}

func pendingOrder(id string) domain.Order {
	return domain.Order{
		ID:        id,
		Items:     []domain.CartLine{{Product: domain.Product{ID: "p", Price: 18000}, Quantity: 1}},
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}
}

func TestGetFallsBackToStore(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	l, cache := newLifecycle(store, nil)

	got, err := l.Get(context.Background(), "o-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, got.Status)

	// the fetch warmed the cache
	_, ok := cache.Get("o-1")
	assert.True(t, ok)
}

func TestGetUnknownOrder(t *testing.T) {
	l, _ := newLifecycle(newMemOrderStore(), nil)
	_, err := l.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestTransitionPersistsThenConfirms(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	pub := &capturePublisher{}
	l, cache := newLifecycle(store, pub)

	got, err := l.Transition(context.Background(), "o-1", domain.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, got.Status)

	cached, ok := cache.Get("o-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusProcessing, cached.Status)

	require.Len(t, pub.orders, 1)
	assert.Equal(t, "o-1", pub.orders[0].OrderID)
	assert.Equal(t, string(domain.StatusProcessing), pub.orders[0].Status)
	assert.Equal(t, "pos-1", pub.orders[0].Terminal)
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	l, _ := newLifecycle(store, nil)

	_, err := l.Transition(context.Background(), "o-1", domain.StatusCompleted)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	assert.Empty(t, store.updates)
}

func TestTransitionRollsBackOnRemoteFailure(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	store.updateErr = errors.New("service unreachable")
	pub := &capturePublisher{}
	l, cache := newLifecycle(store, pub)

	got, err := l.Transition(context.Background(), "o-1", domain.StatusProcessing)
	require.Error(t, err)
	// the caller sees the last persisted state, and so does the cache
	assert.Equal(t, domain.StatusPending, got.Status)
	cached, _ := cache.Get("o-1")
	assert.Equal(t, domain.StatusPending, cached.Status)
	assert.Empty(t, pub.orders)
}

func TestTransitionCompletedStampsTime(t *testing.T) {
	o := pendingOrder("o-1")
	o.Status = domain.StatusProcessing
	store := newMemOrderStore(o)
	l, _ := newLifecycle(store, nil)

	got, err := l.Transition(context.Background(), "o-1", domain.StatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
}

func TestReloadReplacesCache(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"), pendingOrder("o-2"))
	l, _ := newLifecycle(store, nil)

	require.NoError(t, l.Reload(context.Background()))
	assert.Len(t, l.List(context.Background()), 2)
}

func TestReloadErrorLeavesCacheAlone(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	l, cache := newLifecycle(store, nil)
	require.NoError(t, l.Reload(context.Background()))

	store.listErr = errors.New("timeout")
	assert.Error(t, l.Reload(context.Background()))
	_, ok := cache.Get("o-1")
	assert.True(t, ok)
}

func TestRemoveDeletesRemoteThenCache(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	l, cache := newLifecycle(store, nil)
	require.NoError(t, l.Reload(context.Background()))

	require.NoError(t, l.Remove(context.Background(), "o-1"))
	_, ok := cache.Get("o-1")
	assert.False(t, ok)
}

func TestRemoveKeepsCacheOnRemoteFailure(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	store.deleteErr = errors.New("unreachable")
	l, cache := newLifecycle(store, nil)
	require.NoError(t, l.Reload(context.Background()))

	assert.Error(t, l.Remove(context.Background(), "o-1"))
	_, ok := cache.Get("o-1")
	assert.True(t, ok)
}

func TestApplyRemoteStatus(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	l, cache := newLifecycle(store, nil)
	require.NoError(t, l.Reload(context.Background()))

	done := time.Now()
	l.ApplyRemoteStatus(OrderStatusChangedMsg{
		OrderID:     "o-1",
		Status:      string(domain.StatusCompleted),
		CompletedAt: &done,
		OccurredAt:  time.Now(),
		Terminal:    "pos-2",
	})

	got, ok := cache.Get("o-1")
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
}

func TestApplyRemoteStatusSkipsUnknownAndInvalid(t *testing.T) {
	store := newMemOrderStore(pendingOrder("o-1"))
	l, cache := newLifecycle(store, nil)
	require.NoError(t, l.Reload(context.Background()))

	// unknown order: ignored
	l.ApplyRemoteStatus(OrderStatusChangedMsg{OrderID: "o-9", Status: "completed"})
	_, ok := cache.Get("o-9")
	assert.False(t, ok)

	// invalid status value: ignored
	l.ApplyRemoteStatus(OrderStatusChangedMsg{OrderID: "o-1", Status: "refunded"})
	got, _ := cache.Get("o-1")
	assert.Equal(t, domain.StatusPending, got.Status)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/google/uuid"
)

var ErrOrderNotFound = errors.New("order not found")

// OrderLifecycle is the only mutator of a placed order's status. Every
// transition is validated against the state diagram and persisted through
// the remote service before the local cache sees it: a failed remote update
// leaves the cache on the last persisted state.
type OrderLifecycle struct {
	store    OrderStore
	cache    *OrdersCache
	events   EventPublisher
	terminal string
	now      func() time.Time
	newID    func() string
}

func NewOrderLifecycle(store OrderStore, cache *OrdersCache, events EventPublisher, terminal string) *OrderLifecycle {
	return &OrderLifecycle{
		store:    store,
		cache:    cache,
		events:   events,
		terminal: terminal,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (l *OrderLifecycle) Cache() *OrdersCache { return l.cache }

// Get prefers the cached view and falls back to the remote service.
func (l *OrderLifecycle) Get(ctx context.Context, id string) (domain.Order, error) {
	if o, ok := l.cache.Get(id); ok {
		return o, nil
	}
	o, err := l.store.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	if o == nil {
		return domain.Order{}, ErrOrderNotFound
	}
	l.cache.Confirm(*o, l.now())
	return o.Clone(), nil
}

func (l *OrderLifecycle) List(ctx context.Context) []domain.Order {
	return l.cache.List()
}

// Reload pulls the full order list from the remote service into the cache.
// polledAt is passed through so a refresh cannot clobber a transition
// confirmed while the call was in flight.
func (l *OrderLifecycle) Reload(ctx context.Context) error {
	polledAt := l.now()
	list, err := l.store.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	l.cache.ReplaceAll(list, polledAt)
	return nil
}

// Transition moves the order along a legal edge and persists it. The
// in-memory order keeps its previous state unless the remote update
// succeeds.
func (l *OrderLifecycle) Transition(ctx context.Context, orderID string, to domain.OrderStatus) (domain.Order, error) {
	cur, err := l.Get(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	next, err := cur.Transitioned(to, l.now())
	if err != nil {
		return cur, err
	}
	if err := l.store.UpdateOrder(ctx, next); err != nil {
		return cur, fmt.Errorf("update order %s: %w", orderID, err)
	}
	l.cache.Confirm(next, l.now())

	if l.events != nil {
		_ = l.events.PublishOrderStatusChanged(ctx, OrderStatusChangedMsg{
			EventID:     l.newID(),
			OrderID:     next.ID,
			Status:      string(next.Status),
			CompletedAt: next.CompletedAt,
			OccurredAt:  l.now(),
			Terminal:    l.terminal,
		})
	}
	return next, nil
}

// Remove permanently deletes the order from the remote service. No
// tombstone, no recovery.
func (l *OrderLifecycle) Remove(ctx context.Context, orderID string) error {
	if err := l.store.DeleteOrder(ctx, orderID); err != nil {
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}
	l.cache.Drop(orderID)
	return nil
}

// ApplyRemoteStatus folds a status-changed event from another terminal into
// the cache. Stale events (older than the local confirmed state) are
// dropped.
func (l *OrderLifecycle) ApplyRemoteStatus(msg OrderStatusChangedMsg) {
	cur, ok := l.cache.Get(msg.OrderID)
	if !ok {
		return
	}
	status := domain.OrderStatus(msg.Status)
	if !status.Valid() || cur.Status == status {
		return
	}
	cur.Status = status
	cur.CompletedAt = msg.CompletedAt
	l.cache.Confirm(cur, msg.OccurredAt)
}

package usecase

import (
	"sort"
	"sync"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

type cachedOrder struct {
	order       domain.Order
	confirmedAt time.Time // wall clock of the last locally confirmed write
}

// OrdersCache is the in-memory view of the remote order list shared by the
// admin views. A periodic refresh replaces it wholesale, except that a
// refresh never clobbers an order whose local transition was confirmed
// after the poll started: last write wins by completion time of the call,
// not by issue time.
type OrdersCache struct {
	mu     sync.RWMutex
	orders map[string]cachedOrder
}

func NewOrdersCache() *OrdersCache {
	return &OrdersCache{orders: make(map[string]cachedOrder)}
}

// ReplaceAll installs a freshly polled order list. polledAt is the time the
// poll was issued; entries confirmed locally after that are kept.
func (c *OrdersCache) ReplaceAll(list []domain.Order, polledAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make(map[string]cachedOrder, len(list))
	for _, o := range list {
		if cur, ok := c.orders[o.ID]; ok && cur.confirmedAt.After(polledAt) {
			next[o.ID] = cur
			continue
		}
		next[o.ID] = cachedOrder{order: o.Clone()}
	}
	for id, cur := range c.orders {
		if _, ok := next[id]; !ok && cur.confirmedAt.After(polledAt) {
			next[id] = cur
		}
	}
	c.orders = next
}

// Confirm records an order state that the remote service has acknowledged.
func (c *OrdersCache) Confirm(o domain.Order, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orders[o.ID] = cachedOrder{order: o.Clone(), confirmedAt: at}
}

func (c *OrdersCache) Get(id string) (domain.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cur, ok := c.orders[id]
	if !ok {
		return domain.Order{}, false
	}
	return cur.order.Clone(), true
}

// List returns all cached orders, newest first.
func (c *OrdersCache) List() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, 0, len(c.orders))
	for _, cur := range c.orders {
		out = append(out, cur.order.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (c *OrdersCache) Drop(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.orders, id)
}

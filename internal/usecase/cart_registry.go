package usecase

import (
	"sync"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

// CartRegistry owns the draft carts, one per shopping session. Each cart is
// mutated by a single actor (its session); the registry lock only guards
// the map itself.
type CartRegistry struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCartRegistry() *CartRegistry {
	return &CartRegistry{carts: make(map[string]*domain.Cart)}
}

// Get returns the session's cart, creating an empty one on first use.
func (r *CartRegistry) Get(sessionID string) *domain.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[sessionID]
	if !ok {
		c = &domain.Cart{}
		r.carts[sessionID] = c
	}
	return c
}

// Drop forgets the session's cart entirely.
func (r *CartRegistry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
}

package kafka

import (
	"context"

	"github.com/faisalawaludin/kasir-chain/internal/usecase"
)

// OrderStatusChangedHandler folds status events published by other POS
// terminals into the local orders cache. Events from this terminal are
// skipped; the local transition already confirmed the state.
type OrderStatusChangedHandler struct {
	Lifecycle *usecase.OrderLifecycle
	Terminal  string
}

func NewOrderStatusChangedHandler(lifecycle *usecase.OrderLifecycle, terminal string) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Lifecycle: lifecycle, Terminal: terminal}
}

func (h *OrderStatusChangedHandler) Handle(_ context.Context, ev usecase.OrderStatusChangedMsg) error {
	if ev.Terminal == h.Terminal {
		return nil
	}
	h.Lifecycle.ApplyRemoteStatus(ev)
	return nil
}

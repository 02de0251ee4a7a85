package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

// LifecycleSync keeps the order lifecycle and the queue ledger consistent
// when an order is accepted into preparation or marked complete. There is
// no two-phase commit: both steps are attempted, and a half-applied pair is
// surfaced to the operator instead of silently retried.
type LifecycleSync struct {
	ledger    *QueueLedger
	lifecycle *OrderLifecycle
	events    EventPublisher
	terminal  string
	log       *slog.Logger
	now       func() time.Time
}

func NewLifecycleSync(ledger *QueueLedger, lifecycle *OrderLifecycle, events EventPublisher, terminal string, log *slog.Logger) *LifecycleSync {
	return &LifecycleSync{
		ledger:    ledger,
		lifecycle: lifecycle,
		events:    events,
		terminal:  terminal,
		log:       log,
		now:       time.Now,
	}
}

// AcceptOrder tags every item of the order with its id, enqueues one
// preparation ticket, then moves the order to processing. When the enqueue
// succeeds but the transition fails the ticket stays on the queue and the
// error reports the inconsistency.
func (s *LifecycleSync) AcceptOrder(ctx context.Context, orderID string) (domain.QueueTicket, domain.Order, error) {
	order, err := s.lifecycle.Get(ctx, orderID)
	if err != nil {
		return domain.QueueTicket{}, domain.Order{}, err
	}
	if !domain.CanTransition(order.Status, domain.StatusProcessing) {
		return domain.QueueTicket{}, order,
			fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, order.Status, domain.StatusProcessing)
	}

	items := domain.CloneLines(order.Items)
	for i := range items {
		items[i].OrderID = order.ID
	}
	ticket, err := s.ledger.Enqueue(ctx, items, 0)
	if err != nil {
		return domain.QueueTicket{}, order, fmt.Errorf("enqueue order %s: %w", orderID, err)
	}
	if s.events != nil {
		_ = s.events.PublishTicketEnqueued(ctx, TicketEnqueuedMsg{
			TicketID:   ticket.ID,
			Number:     ticket.Number,
			OrderID:    order.ID,
			OccurredAt: s.now(),
			Terminal:   s.terminal,
		})
	}

	updated, err := s.lifecycle.Transition(ctx, orderID, domain.StatusProcessing)
	if err != nil {
		s.log.Error("order enqueued but transition failed; queue and order disagree",
			"order_id", orderID, "ticket_id", ticket.ID, "error", err)
		return ticket, order, fmt.Errorf("order %s enqueued as #%d but not marked processing: %w",
			orderID, ticket.Number, err)
	}
	return ticket, updated, nil
}

// CompleteOrder completes the order, then best-effort completes the queue
// ticket carrying its items. A missing ticket is fine: walk-up orders are
// never enqueued.
func (s *LifecycleSync) CompleteOrder(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.lifecycle.Transition(ctx, orderID, domain.StatusCompleted)
	if err != nil {
		return order, err
	}
	ticket, ok := s.ledger.TicketForOrder(orderID)
	if !ok {
		return order, nil
	}
	if _, err := s.ledger.SetStatus(ctx, ticket.ID, domain.TicketCompleted); err != nil {
		s.log.Error("order completed but ticket status not updated",
			"order_id", orderID, "ticket_id", ticket.ID, "error", err)
		return order, fmt.Errorf("order %s completed but ticket #%d not closed: %w",
			orderID, ticket.Number, err)
	}
	return order, nil
}

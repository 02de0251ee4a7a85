package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/google/uuid"
)

var (
	ErrTicketNotFound      = errors.New("queue ticket not found")
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
	ErrInvalidEstimate     = errors.New("estimate must be non-negative")
)

// DefaultEstimateSeconds is assumed for a ticket enqueued without an
// explicit preparation estimate.
const DefaultEstimateSeconds = 300

// QueueLedger is the ordered, numbered list of preparation tickets. Numbers
// come from a durable counter that only moves forward: deleting a ticket
// never frees its number, and the counter survives restarts through the
// TicketStore. Unlike the order lifecycle, ticket statuses may be set in
// any order.
type QueueLedger struct {
	mu         sync.Mutex
	store      TicketStore
	log        *slog.Logger
	tickets    []domain.QueueTicket
	lastNumber int64
	now        func() time.Time
	newID      func() string
}

// NewQueueLedger restores the ledger from the durable store. A missing or
// unreadable snapshot yields an empty ledger starting at number 0; that is
// logged, never fatal.
func NewQueueLedger(ctx context.Context, store TicketStore, log *slog.Logger) *QueueLedger {
	l := &QueueLedger{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	snap, err := store.Load(ctx)
	if err != nil {
		log.Warn("queue snapshot unreadable, starting empty", "error", err)
		return l
	}
	l.tickets = snap.Tickets
	l.lastNumber = snap.LastNumber
	return l
}

func (l *QueueLedger) persist(ctx context.Context) error {
	snap := QueueSnapshot{
		Tickets:    append([]domain.QueueTicket(nil), l.tickets...),
		LastNumber: l.lastNumber,
	}
	if err := l.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save queue snapshot: %w", err)
	}
	return nil
}

// NextNumber advances and persists the durable counter.
func (l *QueueLedger) NextNumber(ctx context.Context) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastNumber++
	return l.lastNumber, l.persist(ctx)
}

// Enqueue creates a waiting ticket with a fresh id and the next queue
// number. Items must already carry their owning order id; the ledger does
// not tag them. estimatedSeconds <= 0 falls back to the default.
func (l *QueueLedger) Enqueue(ctx context.Context, items []domain.CartLine, estimatedSeconds int64) (domain.QueueTicket, error) {
	if estimatedSeconds <= 0 {
		estimatedSeconds = DefaultEstimateSeconds
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastNumber++
	t := domain.QueueTicket{
		ID:               l.newID(),
		Number:           l.lastNumber,
		Items:            domain.CloneLines(items),
		CreatedAt:        l.now(),
		EstimatedSeconds: estimatedSeconds,
		Status:           domain.TicketWaiting,
	}
	l.tickets = append(l.tickets, t)
	return t, l.persist(ctx)
}

func (l *QueueLedger) find(id string) int {
	for i := range l.tickets {
		if l.tickets[i].ID == id {
			return i
		}
	}
	return -1
}

// SetStatus overwrites the ticket's status. Any of the four states may
// follow any other; the ledger does not enforce an ordering.
func (l *QueueLedger) SetStatus(ctx context.Context, id string, status domain.TicketStatus) (domain.QueueTicket, error) {
	if !status.Valid() {
		return domain.QueueTicket{}, fmt.Errorf("%w: %q", ErrInvalidTicketStatus, status)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return domain.QueueTicket{}, ErrTicketNotFound
	}
	l.tickets[i].Status = status
	return l.tickets[i], l.persist(ctx)
}

// SetEstimate overwrites the remaining-time estimate in seconds.
func (l *QueueLedger) SetEstimate(ctx context.Context, id string, seconds int64) (domain.QueueTicket, error) {
	if seconds < 0 {
		return domain.QueueTicket{}, ErrInvalidEstimate
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return domain.QueueTicket{}, ErrTicketNotFound
	}
	l.tickets[i].EstimatedSeconds = seconds
	return l.tickets[i], l.persist(ctx)
}

// Remove deletes the ticket outright. Its number is not reissued.
func (l *QueueLedger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := l.find(id)
	if i < 0 {
		return ErrTicketNotFound
	}
	l.tickets = append(l.tickets[:i], l.tickets[i+1:]...)
	return l.persist(ctx)
}

// CurrentTickets lists every ticket not yet completed, in insertion order.
// Completed tickets are filtered out of the view, not deleted.
func (l *QueueLedger) CurrentTickets() []domain.QueueTicket {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.QueueTicket, 0, len(l.tickets))
	for _, t := range l.tickets {
		if t.Status != domain.TicketCompleted {
			out = append(out, t)
		}
	}
	return out
}

// TicketForOrder finds the current ticket whose items include the order.
func (l *QueueLedger) TicketForOrder(orderID string) (domain.QueueTicket, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tickets {
		if t.Status != domain.TicketCompleted && t.ForOrder(orderID) {
			return t, true
		}
	}
	return domain.QueueTicket{}, false
}

// Stats counts tickets per status; Total excludes completed.
func (l *QueueLedger) Stats() domain.QueueStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	var s domain.QueueStats
	for _, t := range l.tickets {
		switch t.Status {
		case domain.TicketWaiting:
			s.Waiting++
		case domain.TicketPreparing:
			s.Preparing++
		case domain.TicketReady:
			s.Ready++
		case domain.TicketCompleted:
			s.Completed++
		}
	}
	s.Total = s.Waiting + s.Preparing + s.Ready
	return s
}

package domain

import "time"

type TicketStatus string

const (
	TicketWaiting   TicketStatus = "waiting"
	TicketPreparing TicketStatus = "preparing"
	TicketReady     TicketStatus = "ready"
	TicketCompleted TicketStatus = "completed"
)

// Valid reports whether s is one of the four ticket states. The states have
// no enforced ordering; kitchen staff may move tickets non-linearly.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketWaiting, TicketPreparing, TicketReady, TicketCompleted:
		return true
	}
	return false
}

// QueueTicket is one batch of items in preparation. Number is assigned from
// a durable counter and never reused, even after the ticket is deleted.
// The order referenced by the items may no longer exist.
type QueueTicket struct {
	ID               string
	Number           int64
	Items            []CartLine
	CreatedAt        time.Time
	EstimatedSeconds int64
	Status           TicketStatus
}

// ForOrder reports whether any of the ticket's items belong to the order.
func (t QueueTicket) ForOrder(orderID string) bool {
	for _, l := range t.Items {
		if l.OrderID == orderID {
			return true
		}
	}
	return false
}

type QueueStats struct {
	Waiting   int `json:"waiting"`
	Preparing int `json:"preparing"`
	Ready     int `json:"ready"`
	Completed int `json:"completed"`
	Total     int `json:"total"` // waiting + preparing + ready
}

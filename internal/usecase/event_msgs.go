package usecase

import "time"

// Exchanged between POS terminals on Kafka.

type OrderStatusChangedMsg struct {
	EventID     string     `json:"eventId"`
	OrderID     string     `json:"orderId"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	OccurredAt  time.Time  `json:"occurredAt"`
	Terminal    string     `json:"terminal"`
}

type TicketEnqueuedMsg struct {
	EventID    string    `json:"eventId"`
	TicketID   string    `json:"ticketId"`
	Number     int64     `json:"number"`
	OrderID    string    `json:"orderId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Terminal   string    `json:"terminal"`
}

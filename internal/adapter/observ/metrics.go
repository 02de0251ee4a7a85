package observ

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_orders_placed_total",
		Help: "Orders successfully created on the remote service",
	})

	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_order_transitions_total",
		Help: "Confirmed order status transitions",
	}, []string{"to"})

	TicketsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_queue_tickets_enqueued_total",
		Help: "Preparation tickets added to the queue ledger",
	})
)

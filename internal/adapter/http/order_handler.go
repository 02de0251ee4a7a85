package http

import (
	"context"
	"net/http"
	"time"

	"github.com/faisalawaludin/kasir-chain/internal/adapter/observ"
	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/logging"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/gin-gonic/gin"
)

// OrderHandler is the admin console surface: the polled order list and the
// lifecycle actions that drive the preparation queue.
type OrderHandler struct {
	lifecycle *usecase.OrderLifecycle
	sync      *usecase.LifecycleSync
}

func NewOrderHandler(lifecycle *usecase.OrderLifecycle, sync *usecase.LifecycleSync) *OrderHandler {
	return &OrderHandler{lifecycle: lifecycle, sync: sync}
}

type orderLineResp struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	VariantID   string `json:"variantId,omitempty"`
	Note        string `json:"note,omitempty"`
	Quantity    int    `json:"quantity"`
	OrderID     string `json:"orderId,omitempty"`
}

type orderResp struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	Items         []orderLineResp `json:"items"`
	Subtotal      int64           `json:"subtotal"`
	Discount      int64           `json:"discount"`
	Tax           int64           `json:"tax"`
	Total         int64           `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CryptoToken   string          `json:"cryptoToken,omitempty"`
}

func orderToResp(o domain.Order) orderResp {
	items := make([]orderLineResp, len(o.Items))
	for i, l := range o.Items {
		item := orderLineResp{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Note:        l.Note,
			Quantity:    l.Quantity,
			OrderID:     l.OrderID,
		}
		if l.Variant != nil {
			item.VariantID = l.Variant.ID
		}
		items[i] = item
	}
	return orderResp{
		ID:            o.ID,
		Status:        string(o.Status),
		Items:         items,
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt,
		CompletedAt:   o.CompletedAt,
		PaymentMethod: string(o.PaymentMethod),
		CryptoToken:   o.CryptoToken,
	}
}

// ListOrders serves the cached view refreshed by the background poller.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.lifecycle.List(c.Request.Context())
	out := make([]orderResp, len(orders))
	for i, o := range orders {
		out[i] = orderToResp(o)
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	o, err := h.lifecycle.Get(ctx, c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, orderToResp(o))
}

// AcceptOrder enqueues a preparation ticket and moves the order to
// processing. A half-applied pair comes back as an error with the ticket
// that was already enqueued, so the operator can see the inconsistency.
func (h *OrderHandler) AcceptOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ticket, order, err := h.sync.AcceptOrder(ctx, c.Param("id"))
	if err != nil {
		logging.From(c).Error("accept order failed", "order_id", c.Param("id"), "error", err)
		abortWith(c, err)
		return
	}
	observ.TicketsEnqueued.Inc()
	observ.OrderTransitions.WithLabelValues(string(order.Status)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"order":       orderToResp(order),
		"ticketId":    ticket.ID,
		"queueNumber": ticket.Number,
	})
}

func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.sync.CompleteOrder(ctx, c.Param("id"))
	if err != nil {
		abortWith(c, err)
		return
	}
	observ.OrderTransitions.WithLabelValues(string(order.Status)).Inc()
	c.JSON(http.StatusOK, orderToResp(order))
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	order, err := h.lifecycle.Transition(ctx, c.Param("id"), domain.StatusCancelled)
	if err != nil {
		abortWith(c, err)
		return
	}
	observ.OrderTransitions.WithLabelValues(string(order.Status)).Inc()
	c.JSON(http.StatusOK, orderToResp(order))
}

// DeleteOrder removes the remote record permanently. No tombstone.
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.lifecycle.Remove(ctx, c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

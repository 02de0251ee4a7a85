package http

import (
	"context"
	"net/http"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/faisalawaludin/kasir-chain/internal/usecase"
	"github.com/gin-gonic/gin"
)

// QueueHandler serves the kitchen/pickup display.
type QueueHandler struct {
	ledger *usecase.QueueLedger
}

func NewQueueHandler(ledger *usecase.QueueLedger) *QueueHandler {
	return &QueueHandler{ledger: ledger}
}

type ticketResp struct {
	ID               string          `json:"id"`
	Number           int64           `json:"queueNumber"`
	Status           string          `json:"status"`
	Items            []orderLineResp `json:"items"`
	CreatedAt        time.Time       `json:"createdAt"`
	EstimatedSeconds int64           `json:"estimatedSeconds"`
}

func ticketToResp(t domain.QueueTicket) ticketResp {
	items := make([]orderLineResp, len(t.Items))
	for i, l := range t.Items {
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
	return ticketResp{
		ID:               t.ID,
		Number:           t.Number,
		Status:           string(t.Status),
		Items:            items,
		CreatedAt:        t.CreatedAt,
		EstimatedSeconds: t.EstimatedSeconds,
	}
}

// ListCurrent returns every ticket still on the board, insertion order.
func (h *QueueHandler) ListCurrent(c *gin.Context) {
	tickets := h.ledger.CurrentTickets()
	out := make([]ticketResp, len(tickets))
	for i, t := range tickets {
		out[i] = ticketToResp(t)
	}
	c.JSON(http.StatusOK, out)
}

func (h *QueueHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Stats())
}

type setStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *QueueHandler) SetStatus(c *gin.Context) {
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	t, err := h.ledger.SetStatus(ctx, c.Param("id"), domain.TicketStatus(req.Status))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, ticketToResp(t))
}

type setEstimateReq struct {
	Seconds int64 `json:"seconds"`
}

func (h *QueueHandler) SetEstimate(c *gin.Context) {
	var req setEstimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	t, err := h.ledger.SetEstimate(ctx, c.Param("id"), req.Seconds)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, ticketToResp(t))
}

func (h *QueueHandler) Remove(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.ledger.Remove(ctx, c.Param("id")); err != nil {
		abortWith(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

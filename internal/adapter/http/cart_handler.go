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

const sessionHeader = "X-Session-Id"

// CartHandler serves the storefront: the session cart, voucher resolution,
// and checkout.
type CartHandler struct {
	carts    *usecase.CartRegistry
	catalog  *usecase.Catalog
	checkout *usecase.Checkout
	resolver *usecase.VoucherResolver
}

func NewCartHandler(carts *usecase.CartRegistry, catalog *usecase.Catalog, checkout *usecase.Checkout, resolver *usecase.VoucherResolver) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog, checkout: checkout, resolver: resolver}
}

func (h *CartHandler) session(c *gin.Context) (string, bool) {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
		return "", false
	}
	return id, true
}

type cartLineResp struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	VariantID   string `json:"variantId,omitempty"`
	VariantName string `json:"variantName,omitempty"`
	Note        string `json:"note,omitempty"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
}

type cartResp struct {
	Lines    []cartLineResp `json:"lines"`
	Subtotal int64          `json:"subtotal"`
	Tax      int64          `json:"tax"`
	Total    int64          `json:"total"`
}

func cartToResp(cart *domain.Cart) cartResp {
	lines := cart.Lines()
	resp := cartResp{
		Lines:    make([]cartLineResp, len(lines)),
		Subtotal: cart.Subtotal(),
		Tax:      cart.Tax(),
		Total:    cart.Total(),
	}
	for i, l := range lines {
		lr := cartLineResp{
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Note:        l.Note,
			Quantity:    l.Quantity,
			UnitPrice:   domain.LineUnitPrice(l),
			LineTotal:   domain.LineTotal(l),
		}
		if l.Variant != nil {
			lr.VariantID = l.Variant.ID
			lr.VariantName = l.Variant.Name
		}
		resp.Lines[i] = lr
	}
	return resp
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, cartToResp(h.carts.Get(sid)))
}

type addItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	VariantID string `json:"variantId"`
	Note      string `json:"note"`
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	product, err := h.catalog.Product(ctx, req.ProductID)
	if err != nil {
		abortWith(c, err)
		return
	}
	var variant *domain.Variant
	if req.VariantID != "" {
		variant = product.FindVariant(req.VariantID)
		if variant == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown variant"})
			return
		}
	}

	cart := h.carts.Get(sid)
	if err := cart.AddItem(*product, req.Quantity, variant, req.Note); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, cartToResp(cart))
}

type lineRef struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
}

func (h *CartHandler) mutateLine(c *gin.Context, op func(cart *domain.Cart, ref lineRef) error) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var ref lineRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	cart := h.carts.Get(sid)
	if err := op(cart, ref); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, cartToResp(cart))
}

func (h *CartHandler) IncreaseQuantity(c *gin.Context) {
	h.mutateLine(c, func(cart *domain.Cart, ref lineRef) error {
		return cart.IncreaseQuantity(ref.ProductID, ref.VariantID)
	})
}

func (h *CartHandler) DecreaseQuantity(c *gin.Context) {
	h.mutateLine(c, func(cart *domain.Cart, ref lineRef) error {
		return cart.DecreaseQuantity(ref.ProductID, ref.VariantID)
	})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.mutateLine(c, func(cart *domain.Cart, ref lineRef) error {
		return cart.RemoveItem(ref.ProductID, ref.VariantID)
	})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	h.carts.Get(sid).Clear()
	c.Status(http.StatusNoContent)
}

type resolveVoucherReq struct {
	Code string `json:"code" binding:"required"`
}

// ResolveVoucher previews a voucher for the checkout dialog. One error
// message covers unknown, inactive, and expired codes alike.
func (h *CartHandler) ResolveVoucher(c *gin.Context) {
	var req resolveVoucherReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	v, err := h.resolver.Resolve(ctx, req.Code)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":     v.Code,
		"discount": v.Discount,
	})
}

type checkoutReq struct {
	VoucherCode   string `json:"voucherCode"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
	CryptoToken   string `json:"cryptoToken"`
}

type checkoutResp struct {
	OrderID  string `json:"orderId"`
	Status   string `json:"status"`
	Subtotal int64  `json:"subtotal"`
	Discount int64  `json:"discount"`
	Tax      int64  `json:"tax"`
	Total    int64  `json:"total"`
}

// Checkout places the order on the remote service. The cart is cleared
// only after the remote create succeeded; a failed checkout keeps the cart
// so the shopper can retry or abandon.
func (h *CartHandler) Checkout(c *gin.Context) {
	sid, ok := h.session(c)
	if !ok {
		return
	}
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cart := h.carts.Get(sid)
	order, err := h.checkout.Execute(ctx, cart, usecase.CheckoutInput{
		VoucherCode:   req.VoucherCode,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		CryptoToken:   req.CryptoToken,
	})
	if err != nil {
		abortWith(c, err)
		return
	}
	cart.Clear()
	observ.OrdersPlaced.Inc()
	logging.From(c).Info("order placed", "order_id", order.ID, "total", order.Total)

	c.JSON(http.StatusCreated, checkoutResp{
		OrderID:  order.ID,
		Status:   string(order.Status),
		Subtotal: order.Subtotal,
		Discount: order.Discount,
		Tax:      order.Tax,
		Total:    order.Total,
	})
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
	"github.com/google/uuid"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrMissingCryptoToken   = errors.New("crypto token required for web3 payment")
)

type CheckoutInput struct {
	VoucherCode   string
	PaymentMethod domain.PaymentMethod
	CryptoToken   string
}

// Checkout turns the session cart into a pending order on the remote
// service. On any failure the order is not placed and the cart is left
// untouched; clearing the cart after success is the caller's job.
type Checkout struct {
	orders   OrderStore
	resolver *VoucherResolver
	cache    *OrdersCache
	events   EventPublisher
	terminal string
	now      func() time.Time
	newID    func() string
}

func NewCheckout(orders OrderStore, resolver *VoucherResolver, cache *OrdersCache, events EventPublisher, terminal string) *Checkout {
	return &Checkout{
		orders:   orders,
		resolver: resolver,
		cache:    cache,
		events:   events,
		terminal: terminal,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (uc *Checkout) Execute(ctx context.Context, cart *domain.Cart, in CheckoutInput) (domain.Order, error) {
	if cart.Empty() {
		return domain.Order{}, ErrEmptyCart
	}
	if !in.PaymentMethod.Valid() {
		return domain.Order{}, ErrInvalidPaymentMethod
	}
	if in.PaymentMethod == domain.PaymentWeb3 && in.CryptoToken == "" {
		return domain.Order{}, ErrMissingCryptoToken
	}
	if in.PaymentMethod != domain.PaymentWeb3 {
		in.CryptoToken = ""
	}

	var voucher *domain.Voucher
	if in.VoucherCode != "" {
		v, err := uc.resolver.Resolve(ctx, in.VoucherCode)
		if err != nil {
			return domain.Order{}, err
		}
		voucher = v
	}

	order := domain.NewOrder(uc.newID(), cart.Lines(), voucher, in.PaymentMethod, in.CryptoToken, uc.now())
	if err := uc.orders.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	uc.cache.Confirm(order, uc.now())

	if uc.events != nil {
		_ = uc.events.PublishOrderStatusChanged(ctx, OrderStatusChangedMsg{
			EventID:    uc.newID(),
			OrderID:    order.ID,
			Status:     string(order.Status),
			OccurredAt: uc.now(),
			Terminal:   uc.terminal,
		})
	}
	return order, nil
}

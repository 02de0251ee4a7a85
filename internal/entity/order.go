package domain

import (
	"errors"
	"fmt"
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusCompleted: true},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

var ErrIllegalTransition = errors.New("illegal order status transition")

type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentEWallet    PaymentMethod = "e-wallet"
	PaymentWeb3       PaymentMethod = "web3"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentEWallet, PaymentWeb3:
		return true
	}
	return false
}

// Order is the durable record of a completed checkout. Money fields are
// computed once at creation and never edited independently; the invariant
// Total == Subtotal + Tax - Discount holds for every order.
type Order struct {
	ID            string
	Items         []CartLine
	Status        OrderStatus
	Subtotal      int64
	Discount      int64
	Tax           int64
	Total         int64
	CreatedAt     time.Time
	CompletedAt   *time.Time
	PaymentMethod PaymentMethod // empty = not recorded
	CryptoToken   string        // token symbol when PaymentMethod is web3
}

// NewOrder snapshots the given lines (deep copy) and prices them with the
// optional voucher. The order starts pending with no completion time.
func NewOrder(id string, lines []CartLine, voucher *Voucher, method PaymentMethod, cryptoToken string, now time.Time) Order {
	items := CloneLines(lines)
	return Order{
		ID:            id,
		Items:         items,
		Status:        StatusPending,
		Subtotal:      Subtotal(items),
		Discount:      DiscountAmount(items, voucher),
		Tax:           Tax(items),
		Total:         Total(items, voucher),
		CreatedAt:     now,
		PaymentMethod: method,
		CryptoToken:   cryptoToken,
	}
}

// Transitioned returns a copy of the order moved to the target status, or
// ErrIllegalTransition when the edge is not in the state diagram. The
// completion time is stamped only on the edge into completed.
func (o Order) Transitioned(to OrderStatus, now time.Time) (Order, error) {
	if !CanTransition(o.Status, to) {
		return o, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, o.Status, to)
	}
	out := o
	out.Status = to
	if to == StatusCompleted {
		t := now
		out.CompletedAt = &t
	}
	return out, nil
}

// Clone deep-copies the order, including its items.
func (o Order) Clone() Order {
	out := o
	out.Items = CloneLines(o.Items)
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		out.CompletedAt = &t
	}
	return out
}

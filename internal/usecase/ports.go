package usecase

import (
	"context"
	"errors"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

// Remote data service ports. Each call either succeeds or reports a
// RemoteError/transport failure from the adapter; callers must not treat a
// failed call as committed.

type CatalogStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) error
	UpdateCategory(ctx context.Context, c domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
}

type OrderStore interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	CreateOrder(ctx context.Context, o domain.Order) error
	UpdateOrder(ctx context.Context, o domain.Order) error
	DeleteOrder(ctx context.Context, id string) error
}

type VoucherStore interface {
	ListVouchers(ctx context.Context) ([]domain.Voucher, error)
	CreateVoucher(ctx context.Context, v domain.Voucher) error
	UpdateVoucher(ctx context.Context, v domain.Voucher) error
	DeleteVoucher(ctx context.Context, id string) error
}

// QueueSnapshot is the full durable state of the queue ledger: the ticket
// list plus the last issued number, written after every mutation.
type QueueSnapshot struct {
	Tickets    []domain.QueueTicket `json:"tickets"`
	LastNumber int64                `json:"lastNumber"`
}

// ErrCorruptSnapshot marks an unreadable local store. The ledger logs it
// and starts empty; it is never fatal.
var ErrCorruptSnapshot = errors.New("queue snapshot unreadable")

type TicketStore interface {
	Save(ctx context.Context, snap QueueSnapshot) error
	// Load returns a zero snapshot with no error when nothing was stored,
	// and ErrCorruptSnapshot (wrapped) when the stored state is unreadable.
	Load(ctx context.Context) (QueueSnapshot, error)
}

// ProductCache is a read-through cache for the catalog list.
type ProductCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, bool)
	SetProducts(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

// EventPublisher fans confirmed mutations out to other terminals.
// Publishing is best-effort; a publish failure never undoes the mutation.
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, msg OrderStatusChangedMsg) error
	PublishTicketEnqueued(ctx context.Context, msg TicketEnqueuedMsg) error
}

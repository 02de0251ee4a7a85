package usecase

import (
	"context"
	"sync"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

// In-memory fakes for the remote service and the durable ticket store.

type memTicketStore struct {
	mu      sync.Mutex
	snap    QueueSnapshot
	saves   int
	saveErr error
	loadErr error
}

func (s *memTicketStore) Save(_ context.Context, snap QueueSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snap = snap
	s.saves++
	return nil
}

func (s *memTicketStore) Load(_ context.Context) (QueueSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return QueueSnapshot{}, s.loadErr
	}
	return s.snap, nil
}

type memOrderStore struct {
	mu        sync.Mutex
	orders    map[string]domain.Order
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
	updates   []domain.Order
}

func newMemOrderStore(orders ...domain.Order) *memOrderStore {
	s := &memOrderStore{orders: make(map[string]domain.Order)}
	for _, o := range orders {
		s.orders[o.ID] = o
	}
	return s
}

func (s *memOrderStore) ListOrders(context.Context) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o.Clone())
	}
	return out, nil
}

func (s *memOrderStore) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	o, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	c := o.Clone()
	return &c, nil
}

func (s *memOrderStore) CreateOrder(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.orders[o.ID] = o.Clone()
	return nil
}

func (s *memOrderStore) UpdateOrder(_ context.Context, o domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.orders[o.ID] = o.Clone()
	s.updates = append(s.updates, o.Clone())
	return nil
}

func (s *memOrderStore) DeleteOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.orders, id)
	return nil
}

type memVoucherStore struct {
	vouchers []domain.Voucher
	listErr  error
}

func (s *memVoucherStore) ListVouchers(context.Context) ([]domain.Voucher, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.vouchers, nil
}

func (s *memVoucherStore) CreateVoucher(_ context.Context, v domain.Voucher) error {
	s.vouchers = append(s.vouchers, v)
	return nil
}

func (s *memVoucherStore) UpdateVoucher(_ context.Context, v domain.Voucher) error {
	for i := range s.vouchers {
		if s.vouchers[i].ID == v.ID {
			s.vouchers[i] = v
		}
	}
	return nil
}

func (s *memVoucherStore) DeleteVoucher(_ context.Context, id string) error {
	out := s.vouchers[:0]
	for _, v := range s.vouchers {
		if v.ID != id {
			out = append(out, v)
		}
	}
	s.vouchers = out
	return nil
}

type capturePublisher struct {
	mu      sync.Mutex
	orders  []OrderStatusChangedMsg
	tickets []TicketEnqueuedMsg
	err     error
}

func (p *capturePublisher) PublishOrderStatusChanged(_ context.Context, msg OrderStatusChangedMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.orders = append(p.orders, msg)
	return nil
}

func (p *capturePublisher) PublishTicketEnqueued(_ context.Context, msg TicketEnqueuedMsg) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.tickets = append(p.tickets, msg)
	return nil
}

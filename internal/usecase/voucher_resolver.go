package usecase

import (
	"context"
	"fmt"
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

// VoucherResolver checks a user-supplied code against the remote voucher
// set. It never mutates or consumes a voucher.
type VoucherResolver struct {
	vouchers VoucherStore
	now      func() time.Time
}

func NewVoucherResolver(vouchers VoucherStore) *VoucherResolver {
	return &VoucherResolver{vouchers: vouchers, now: time.Now}
}

func (r *VoucherResolver) Resolve(ctx context.Context, code string) (*domain.Voucher, error) {
	all, err := r.vouchers.ListVouchers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vouchers: %w", err)
	}
	return domain.ResolveVoucher(code, all, r.now())
}

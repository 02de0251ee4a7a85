package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrVoucherNotFound covers both an unknown code and an expired/inactive
// voucher; callers surface one message and never leak which check failed.
var ErrVoucherNotFound = errors.New("invalid or expired voucher")

type Voucher struct {
	ID          string
	Code        string // case-insensitive match key
	Description string
	Discount    int64 // percentage, 0-100
	ExpiryDate  time.Time
	IsActive    bool
}

func (v Voucher) ValidAt(now time.Time) bool {
	return v.IsActive && v.ExpiryDate.After(now)
}

// ResolveVoucher returns the first voucher whose code matches
// case-insensitively and that is active and unexpired at now. Vouchers are
// not consumed; a voucher stays usable until its expiry.
func ResolveVoucher(code string, vouchers []Voucher, now time.Time) (*Voucher, error) {
	for i := range vouchers {
		if !strings.EqualFold(vouchers[i].Code, code) {
			continue
		}
		if vouchers[i].ValidAt(now) {
			v := vouchers[i]
			return &v, nil
		}
	}
	return nil, ErrVoucherNotFound
}

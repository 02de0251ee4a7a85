package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineUnitPriceIncludesVariant(t *testing.T) {
	base := CartLine{Product: latte, Quantity: 1}
	assert.Equal(t, int64(24000), LineUnitPrice(base))

	withVariant := CartLine{Product: latte, Quantity: 1, Variant: latte.FindVariant("v-l")}
	assert.Equal(t, int64(30000), LineUnitPrice(withVariant))
	assert.Equal(t, int64(30000), LineTotal(withVariant))
}

func TestCartTotalsWithTenPercentTax(t *testing.T) {
	lines := []CartLine{{Product: latte, Quantity: 1}}

	assert.Equal(t, int64(24000), Subtotal(lines))
	assert.Equal(t, int64(2400), Tax(lines))
	assert.Equal(t, int64(26400), Total(lines, nil))
}

func TestTotalWithVoucherDiscount(t *testing.T) {
	lines := []CartLine{{Product: latte, Quantity: 1}} // subtotal 24000

	v := &Voucher{
		Code:       "OPENING10",
		Discount:   10,
		IsActive:   true,
		ExpiryDate: time.Now().Add(24 * time.Hour),
	}
	assert.Equal(t, int64(2400), DiscountAmount(lines, v))
	// subtotal 24000 + tax 2400 - discount 2400
	assert.Equal(t, int64(24000), Total(lines, v))
}

func TestPercentageRoundsHalfUp(t *testing.T) {
	cases := []struct {
		amount int64
		want   int64 // 10% of amount, rounded half-up
	}{
		{amount: 100, want: 10},
		{amount: 104, want: 10},
		{amount: 105, want: 11},
		{amount: 109, want: 11},
		{amount: 1, want: 0},
		{amount: 5, want: 1},
	}
	for _, tc := range cases {
		lines := []CartLine{{Product: Product{ID: "p", Price: tc.amount}, Quantity: 1}}
		assert.Equal(t, tc.want, Tax(lines), "amount %d", tc.amount)
	}
}

func TestTotalInvariantHolds(t *testing.T) {
	lines := []CartLine{
		{Product: espresso, Quantity: 3},
		{Product: latte, Quantity: 2, Variant: latte.FindVariant("v-l")},
	}
	v := &Voucher{Code: "X", Discount: 15, IsActive: true, ExpiryDate: time.Now().Add(time.Hour)}

	got := Total(lines, v)
	assert.Equal(t, Subtotal(lines)+Tax(lines)-DiscountAmount(lines, v), got)
}

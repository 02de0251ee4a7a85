package domain

// Pricing is pure arithmetic over cart lines. All amounts are int64 in the
// smallest currency unit; percentages are rounded half-up to the nearest
// unit, and the same rule applies everywhere a percentage is taken.

const taxRatePercent = 10

func roundPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}

// LineUnitPrice is the product base price plus the selected variant's
// additional price, if any.
func LineUnitPrice(l CartLine) int64 {
	p := l.Product.Price
	if l.Variant != nil {
		p += l.Variant.AdditionalPrice
	}
	return p
}

func LineTotal(l CartLine) int64 {
	return LineUnitPrice(l) * int64(l.Quantity)
}

func Subtotal(lines []CartLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += LineTotal(l)
	}
	return sum
}

func Tax(lines []CartLine) int64 {
	return roundPercent(Subtotal(lines), taxRatePercent)
}

// DiscountAmount converts an active voucher's percentage into currency
// units. No voucher means no discount.
func DiscountAmount(lines []CartLine, v *Voucher) int64 {
	if v == nil {
		return 0
	}
	return roundPercent(Subtotal(lines), v.Discount)
}

func Total(lines []CartLine, v *Voucher) int64 {
	return Subtotal(lines) + Tax(lines) - DiscountAmount(lines, v)
}

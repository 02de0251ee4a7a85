package domain

import "errors"

var (
	ErrQuantityInvalid = errors.New("quantity must be at least 1")
	ErrLineNotFound    = errors.New("cart line not found")
)

// CartLine is one entry of a draft order. The product is snapshotted by
// value at add time; later catalog edits never reach a placed line.
// Variant == nil means "no variant selected" and matches only that.
type CartLine struct {
	Product  Product
	Quantity int
	Variant  *Variant
	Note     string
	OrderID  string // set once the line is accepted into preparation
}

type lineKey struct {
	productID string
	variantID string
	note      string
}

func (l CartLine) key() lineKey {
	k := lineKey{productID: l.Product.ID, note: l.Note}
	if l.Variant != nil {
		k.variantID = l.Variant.ID
	}
	return k
}

// clone deep-copies the line so that stored orders and queue tickets
// never alias the cart's backing data.
func (l CartLine) clone() CartLine {
	out := l
	if l.Variant != nil {
		v := *l.Variant
		out.Variant = &v
	}
	if len(l.Product.Variants) > 0 {
		out.Product.Variants = append([]Variant(nil), l.Product.Variants...)
	}
	return out
}

// CloneLines deep-copies a slice of lines.
func CloneLines(lines []CartLine) []CartLine {
	if lines == nil {
		return nil
	}
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		out[i] = l.clone()
	}
	return out
}

// Cart holds the current draft order's lines in insertion order. Lines are
// merged by identity key (product id, variant id or none, note or none);
// the merge rule is the only uniqueness guarantee.
type Cart struct {
	lines []CartLine
}

// AddItem merges quantity into an existing line with the same identity key
// or appends a new line at the end.
func (c *Cart) AddItem(p Product, quantity int, variant *Variant, note string) error {
	if quantity < 1 {
		return ErrQuantityInvalid
	}
	line := CartLine{Product: p, Quantity: quantity, Variant: variant, Note: note}
	key := line.key()
	for i := range c.lines {
		if c.lines[i].key() == key {
			c.lines[i].Quantity += quantity
			return nil
		}
	}
	c.lines = append(c.lines, line.clone())
	return nil
}

// match finds the first line for (productID, variantID). variantID "" matches
// only lines without a selected variant.
func (c *Cart) match(productID, variantID string) int {
	for i := range c.lines {
		lv := ""
		if c.lines[i].Variant != nil {
			lv = c.lines[i].Variant.ID
		}
		if c.lines[i].Product.ID == productID && lv == variantID {
			return i
		}
	}
	return -1
}

func (c *Cart) IncreaseQuantity(productID, variantID string) error {
	i := c.match(productID, variantID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines[i].Quantity++
	return nil
}

// DecreaseQuantity decrements the matching line. Decrementing a quantity-1
// line removes it; that is the intended remove-by-decrement outcome, not an
// error.
func (c *Cart) DecreaseQuantity(productID, variantID string) error {
	i := c.match(productID, variantID)
	if i < 0 {
		return ErrLineNotFound
	}
	if c.lines[i].Quantity <= 1 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity--
	return nil
}

// RemoveItem removes the matching line outright. With an empty variantID only
// the no-variant line is removed, not every variant of the product.
func (c *Cart) RemoveItem(productID, variantID string) error {
	i := c.match(productID, variantID)
	if i < 0 {
		return ErrLineNotFound
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a deep copy of the current line set.
func (c *Cart) Lines() []CartLine {
	return CloneLines(c.lines)
}

func (c *Cart) Subtotal() int64 {
	return Subtotal(c.lines)
}

func (c *Cart) Tax() int64 {
	return Tax(c.lines)
}

func (c *Cart) Total() int64 {
	return Total(c.lines, nil)
}

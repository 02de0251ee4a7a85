package remote

import (
	"time"

	domain "github.com/faisalawaludin/kasir-chain/internal/entity"
)

// Wire shapes of the remote data service. Optional fields are pointers
// ("present or absent", never null-with-meaning); money is int64 in the
// smallest currency unit; timestamps are unix nanoseconds so they
// round-trip as points in time.

type variantData struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	AdditionalPrice int64   `json:"additionalPrice"`
	Note            *string `json:"note,omitempty"`
}

type productData struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       int64         `json:"price"`
	Image       string        `json:"image"`
	CategoryID  string        `json:"categoryId"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	SubCategories []variantData `json:"subCategories"`
}

type categoryData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type cartItemData struct {
	Product             productData  `json:"product"`
	Quantity            int          `json:"quantity"`
	SelectedSubCategory *variantData `json:"selectedSubCategory,omitempty"`
	CustomerNote        *string      `json:"customerNote,omitempty"`
	OrderID             *string      `json:"orderId,omitempty"`
}

type orderData struct {
	ID            string         `json:"id"`
	Items         []cartItemData `json:"items"`
	Status        string         `json:"status"`
	Subtotal      int64          `json:"subtotal"`
	Discount      int64          `json:"discount"`
	Tax           int64          `json:"tax"`
	Total         int64          `json:"total"`
	CreatedAt     int64          `json:"createdAt"`
	CompletedAt   *int64         `json:"completedAt,omitempty"`
	PaymentMethod *string        `json:"paymentMethod,omitempty"`
	CryptoToken   *string        `json:"cryptoToken,omitempty"`
}

type voucherData struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Discount    int64  `json:"discount"`
	ExpiryDate  string `json:"expiryDate"`
	IsActive    bool   `json:"isActive"`
}

const expiryLayout = "2006-01-02"

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func variantToWire(v domain.Variant) variantData {
	return variantData{
		ID:              v.ID,
		Name:            v.Name,
		AdditionalPrice: v.AdditionalPrice,
		Note:            optString(v.Note),
	}
}

func variantFromWire(d variantData) domain.Variant {
	return domain.Variant{
		ID:              d.ID,
		Name:            d.Name,
		AdditionalPrice: d.AdditionalPrice,
		Note:            strOrEmpty(d.Note),
	}
}

func productToWire(p domain.Product) productData {
	subs := make([]variantData, len(p.Variants))
	for i, v := range p.Variants {
		subs[i] = variantToWire(v)
	}
	return productData{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		CategoryID:    p.CategoryID,
		Description:   p.Description,
		Status:        string(p.Status),
		SubCategories: subs,
	}
}

func productFromWire(d productData) domain.Product {
	variants := make([]domain.Variant, len(d.SubCategories))
	for i, v := range d.SubCategories {
		variants[i] = variantFromWire(v)
	}
	return domain.Product{
		ID:          d.ID,
		Name:        d.Name,
		Price:       d.Price,
		Image:       d.Image,
		CategoryID:  d.CategoryID,
		Description: d.Description,
		Status:      domain.ProductStatus(d.Status),
		Variants:    variants,
	}
}

func categoryToWire(c domain.Category) categoryData {
	return categoryData{ID: c.ID, Name: c.Name, Icon: c.Icon}
}

func categoryFromWire(d categoryData) domain.Category {
	return domain.Category{ID: d.ID, Name: d.Name, Icon: d.Icon}
}

func lineToWire(l domain.CartLine) cartItemData {
	item := cartItemData{
		Product:      productToWire(l.Product),
		Quantity:     l.Quantity,
		CustomerNote: optString(l.Note),
		OrderID:      optString(l.OrderID),
	}
	if l.Variant != nil {
		v := variantToWire(*l.Variant)
		item.SelectedSubCategory = &v
	}
	return item
}

func lineFromWire(d cartItemData) domain.CartLine {
	line := domain.CartLine{
		Product:  productFromWire(d.Product),
		Quantity: d.Quantity,
		Note:     strOrEmpty(d.CustomerNote),
		OrderID:  strOrEmpty(d.OrderID),
	}
	if d.SelectedSubCategory != nil {
		v := variantFromWire(*d.SelectedSubCategory)
		line.Variant = &v
	}
	return line
}

func orderToWire(o domain.Order) orderData {
	items := make([]cartItemData, len(o.Items))
	for i, l := range o.Items {
		items[i] = lineToWire(l)
	}
	d := orderData{
		ID:            o.ID,
		Items:         items,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		Tax:           o.Tax,
		Total:         o.Total,
		CreatedAt:     o.CreatedAt.UnixNano(),
		PaymentMethod: optString(string(o.PaymentMethod)),
		CryptoToken:   optString(o.CryptoToken),
	}
	if o.CompletedAt != nil {
		n := o.CompletedAt.UnixNano()
		d.CompletedAt = &n
	}
	return d
}

func orderFromWire(d orderData) domain.Order {
	items := make([]domain.CartLine, len(d.Items))
	for i, it := range d.Items {
		items[i] = lineFromWire(it)
	}
	o := domain.Order{
		ID:            d.ID,
		Items:         items,
		Status:        domain.OrderStatus(d.Status),
		Subtotal:      d.Subtotal,
		Discount:      d.Discount,
		Tax:           d.Tax,
		Total:         d.Total,
		CreatedAt:     time.Unix(0, d.CreatedAt),
		PaymentMethod: domain.PaymentMethod(strOrEmpty(d.PaymentMethod)),
		CryptoToken:   strOrEmpty(d.CryptoToken),
	}
	if d.CompletedAt != nil {
		t := time.Unix(0, *d.CompletedAt)
		o.CompletedAt = &t
	}
	return o
}

func voucherToWire(v domain.Voucher) voucherData {
	return voucherData{
		ID:          v.ID,
		Code:        v.Code,
		Description: v.Description,
		Discount:    v.Discount,
		ExpiryDate:  v.ExpiryDate.Format(expiryLayout),
		IsActive:    v.IsActive,
	}
}

func voucherFromWire(d voucherData) domain.Voucher {
	expiry, err := time.Parse(expiryLayout, d.ExpiryDate)
	if err != nil {
		expiry, _ = time.Parse(time.RFC3339, d.ExpiryDate)
	}
	return domain.Voucher{
		ID:          d.ID,
		Code:        d.Code,
		Description: d.Description,
		Discount:    d.Discount,
		ExpiryDate:  expiry,
		IsActive:    d.IsActive,
	}
}

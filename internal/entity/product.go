package domain

type ProductStatus string

const (
	ProductAvailable  ProductStatus = "available"
	ProductOutOfStock ProductStatus = "out_of_stock"
	ProductComingSoon ProductStatus = "coming_soon"
)

type Category struct {
	ID   string
	Name string
	Icon string
}

// Variant is a priced sub-option of a product (e.g. size). AdditionalPrice
// is in the smallest currency unit and added on top of the base price.
type Variant struct {
	ID              string
	Name            string
	AdditionalPrice int64
	Note            string
}

type Product struct {
	ID          string
	Name        string
	Price       int64 // base price, smallest currency unit
	Image       string
	CategoryID  string
	Description string
	Status      ProductStatus
	Variants    []Variant
}

// FindVariant returns the variant with the given id, or nil.
func (p Product) FindVariant(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			v := p.Variants[i]
			return &v
		}
	}
	return nil
}

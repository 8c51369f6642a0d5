package product

import "time"

type Product struct {
	ID          int64
	Name        string
	Description *string
	BasePrice   int64
	Stock       int
	VendorID    int64
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Variants []Variant
}

type Variant struct {
	ID              int64
	ProductID       int64
	Name            string
	PriceAdjustment int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Pricing is the catalog lookup result used by checkout: the product's
// base price and the vendor that owns it.
type Pricing struct {
	BasePrice int64
	VendorID  int64
}

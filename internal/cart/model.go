package cart

import "time"

type Status string

const (
	// StatusOpen means the cart accepts item changes and checkout claims.
	StatusOpen Status = "open"
	// StatusCheckingOut marks the cart as claimed by an in-flight checkout.
	StatusCheckingOut Status = "checking_out"
)

type Cart struct {
	ID         int64
	CustomerID int64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Lines []Line
}

// Line is one product(+variant)/quantity entry in a customer's cart.
type Line struct {
	ID        int64
	CartID    int64
	ProductID int64
	VariantID *int64
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AddItemParams struct {
	CustomerID int64
	ProductID  int64
	VariantID  *int64
	Quantity   int
}

type UpdateItemParams struct {
	CustomerID int64
	LineID     int64
	Quantity   int
}

package order

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusCanceled Status = "canceled"
)

// Order is one vendor's share of a checkout. A multivendor cart produces
// one Order per vendor.
type Order struct {
	ID                   int64
	CustomerID           int64
	VendorID             int64
	Status               Status
	Total                int64
	ExpectedDeliveryDate *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Details []Detail
}

// Detail is a historical record: Price is snapshotted at checkout time and
// never re-read from the catalog.
type Detail struct {
	ID        int64
	OrderID   int64
	ProductID int64
	VariantID *int64
	Quantity  int
	Price     int64
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type FilterInput struct {
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}

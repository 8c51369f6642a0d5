package support

import "time"

type TicketStatus string

const (
	StatusOpen       TicketStatus = "open"
	StatusInProgress TicketStatus = "in_progress"
	StatusClosed     TicketStatus = "closed"
)

type Ticket struct {
	ID          int64
	CustomerID  int64
	VendorID    *int64
	Subject     string
	Description *string
	Status      TicketStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateTicketParams struct {
	CustomerID  int64
	VendorID    *int64
	Subject     string
	Description *string
}

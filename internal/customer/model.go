package customer

import "time"

type Customer struct {
	ID        int64
	Email     string
	FullName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

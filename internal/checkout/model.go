package checkout

import "go.uber.org/multierr"

// ResolvedLine is a cart line enriched with the owning vendor and the unit
// price computed at checkout time. It only exists for the duration of one
// checkout call and is never persisted.
type ResolvedLine struct {
	ProductID int64
	VariantID *int64
	VendorID  int64
	Quantity  int
	UnitPrice int64
}

func (l ResolvedLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// VendorGroup is the subset of resolved lines belonging to one vendor,
// destined for one order.
type VendorGroup struct {
	VendorID int64
	Lines    []ResolvedLine
	Total    int64
}

type OutcomeStatus string

const (
	OutcomeCreated OutcomeStatus = "created"
	OutcomeFailed  OutcomeStatus = "failed"
)

// VendorOutcome reports what happened to one vendor's share of the checkout.
type VendorOutcome struct {
	VendorID int64
	OrderID  int64
	Status   OutcomeStatus
	Err      error
}

// Result is the mixed-outcome report of one checkout call. An empty cart
// yields a Result with no outcomes and no error.
type Result struct {
	PerVendor   []VendorOutcome
	CartCleared bool
}

// Created returns how many vendor orders were materialized.
func (r *Result) Created() int {
	n := 0
	for _, o := range r.PerVendor {
		if o.Status == OutcomeCreated {
			n++
		}
	}
	return n
}

// Err combines the failures of all vendor groups, or nil if every group
// succeeded.
func (r *Result) Err() error {
	var err error
	for _, o := range r.PerVendor {
		if o.Status == OutcomeFailed {
			err = multierr.Append(err, o.Err)
		}
	}
	return err
}

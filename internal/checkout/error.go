package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAddress = errors.New("delivery address is required")
)

// LookupError means a cart line references a product or variant that no
// longer exists in the catalog. It aborts the whole checkout before any
// write occurs.
type LookupError struct {
	ProductID int64
	VariantID *int64
	Err       error
}

func (e *LookupError) Error() string {
	if e.VariantID != nil {
		return fmt.Sprintf("catalog lookup failed for product %d variant %d: %v",
			e.ProductID, *e.VariantID, e.Err)
	}
	return fmt.Sprintf("catalog lookup failed for product %d: %v", e.ProductID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// MaterializeError means the order+details write failed for one vendor
// group. It is local to that group: committed sibling orders stand.
type MaterializeError struct {
	VendorID int64
	Err      error
}

func (e *MaterializeError) Error() string {
	return fmt.Sprintf("failed to materialize order for vendor %d: %v", e.VendorID, e.Err)
}

func (e *MaterializeError) Unwrap() error {
	return e.Err
}

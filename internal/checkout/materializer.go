package checkout

import (
	"context"

	"kinmel-be/internal/order"
)

// OrderStore persists one order plus its details as a single unit.
type OrderStore interface {
	CreateWithDetails(ctx context.Context, o *order.Order, details []order.Detail) error
}

// Materializer turns one vendor group into a pending order with one detail
// row per line, addressed to a single delivery address. The write is
// all-or-nothing inside the store's transaction; a failure surfaces as
// *MaterializeError naming the vendor.
type Materializer struct {
	orders OrderStore
}

func NewMaterializer(orders OrderStore) *Materializer {
	return &Materializer{orders: orders}
}

func (m *Materializer) Materialize(
	ctx context.Context,
	group VendorGroup,
	customerID int64,
	address string,
) (int64, error) {

	o := &order.Order{
		CustomerID: customerID,
		VendorID:   group.VendorID,
		Status:     order.StatusPending,
		Total:      group.Total,
	}

	details := make([]order.Detail, 0, len(group.Lines))
	for _, line := range group.Lines {
		details = append(details, order.Detail{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Address:   address,
		})
	}

	if err := m.orders.CreateWithDetails(ctx, o, details); err != nil {
		return 0, &MaterializeError{VendorID: group.VendorID, Err: err}
	}

	return o.ID, nil
}

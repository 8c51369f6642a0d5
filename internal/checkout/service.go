package checkout

import (
	"context"
	"errors"
	"time"

	"kinmel-be/internal/cart"
	"kinmel-be/internal/logger"
	"kinmel-be/internal/metrics"

	"go.uber.org/zap"
)

// CartStore is the slice of the cart repository checkout needs: claiming,
// reading and clearing one customer's cart.
type CartStore interface {
	ClaimForCheckout(ctx context.Context, customerID int64) (int64, error)
	LoadLines(ctx context.Context, cartID int64) ([]cart.Line, error)
	ReleaseClaim(ctx context.Context, cartID int64) error
	Clear(ctx context.Context, cartID int64) error
}

// Service drives one checkout attempt end to end: claim cart, resolve
// prices, partition by vendor, materialize per vendor, clear the cart.
type Service interface {
	Checkout(ctx context.Context, customerID int64, address string) (*Result, error)
}

type service struct {
	carts        CartStore
	pricer       *Pricer
	materializer *Materializer
	metrics      *metrics.Checkout
}

func NewService(carts CartStore, catalog Catalog, orders OrderStore, m *metrics.Checkout) Service {
	return &service{
		carts:        carts,
		pricer:       NewPricer(catalog),
		materializer: NewMaterializer(orders),
		metrics:      m,
	}
}

// Checkout converts the customer's cart into one pending order per vendor.
//
// Failure policy: a stale catalog reference aborts everything before any
// write; a persistence failure is local to its vendor group and committed
// sibling orders stand. The cart is cleared only when every group
// materialized; otherwise all lines stay in place for a retry.
func (s *service) Checkout(ctx context.Context, customerID int64, address string) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int64("customer_id", customerID),
	)

	if address == "" {
		return nil, ErrMissingAddress
	}

	s.metrics.Attempt()
	start := time.Now()
	defer func() {
		s.metrics.ObserveDuration(time.Since(start).Seconds())
	}()

	// 1. Claim the cart so a double-tap checkout cannot double-spend it.
	cartID, err := s.carts.ClaimForCheckout(ctx, customerID)
	if errors.Is(err, cart.ErrNoActiveCart) {
		log.Info("checkout on missing cart is a no-op")
		return &Result{}, nil
	}
	if errors.Is(err, cart.ErrCheckoutInProgress) {
		s.metrics.ClaimRejected()
		log.Warn("concurrent checkout rejected")
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	log = log.With(zap.Int64("cart_id", cartID))

	// 2. Load lines. Empty cart succeeds with zero orders.
	lines, err := s.carts.LoadLines(ctx, cartID)
	if err != nil {
		s.release(ctx, cartID)
		return nil, err
	}
	if len(lines) == 0 {
		s.release(ctx, cartID)
		log.Info("checkout on empty cart is a no-op")
		return &Result{}, nil
	}

	// 3. Resolve every price up front. Any stale reference aborts the
	// whole checkout here, before a single write.
	resolved, err := s.pricer.ResolveLines(ctx, lines)
	if err != nil {
		s.metrics.LookupAborted()
		s.release(ctx, cartID)
		log.Warn("checkout aborted by catalog lookup", zap.Error(err))
		return nil, err
	}

	// 4. One group per vendor, in cart encounter order.
	groups := PartitionByVendor(resolved)

	log.Info("materializing vendor groups",
		zap.Int("line_count", len(lines)),
		zap.Int("vendor_count", len(groups)),
	)

	// 5. Groups are independent: one failure never rolls back committed
	// siblings, it only keeps the cart from being cleared.
	result := &Result{PerVendor: make([]VendorOutcome, 0, len(groups))}
	failed := false

	for _, group := range groups {
		orderID, err := s.materializer.Materialize(ctx, group, customerID, address)
		if err != nil {
			failed = true
			s.metrics.GroupFailed()
			log.Error("vendor group failed to materialize",
				zap.Int64("vendor_id", group.VendorID),
				zap.Error(err),
			)
			result.PerVendor = append(result.PerVendor, VendorOutcome{
				VendorID: group.VendorID,
				Status:   OutcomeFailed,
				Err:      err,
			})
			continue
		}

		s.metrics.OrderCreated()
		result.PerVendor = append(result.PerVendor, VendorOutcome{
			VendorID: group.VendorID,
			OrderID:  orderID,
			Status:   OutcomeCreated,
		})
	}

	// 6. Clearing is all-or-nothing at the cart id: only a fully
	// successful checkout may remove lines.
	if failed {
		s.release(ctx, cartID)
		log.Warn("cart kept for retry",
			zap.Int("created", result.Created()),
			zap.Int("total_groups", len(groups)),
		)
		return result, nil
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		// Orders are committed and valid; the cart still holds its lines.
		// Release the claim so the customer is not locked out.
		log.Error("failed to clear cart after successful checkout", zap.Error(err))
		s.release(ctx, cartID)
		return result, nil
	}

	result.CartCleared = true
	s.metrics.CartCleared()
	log.Info("checkout complete",
		zap.Int("orders_created", result.Created()),
	)

	return result, nil
}

func (s *service) release(ctx context.Context, cartID int64) {
	if err := s.carts.ReleaseClaim(ctx, cartID); err != nil {
		logger.FromCtx(ctx).Error("failed to release cart claim",
			zap.Int64("cart_id", cartID),
			zap.Error(err),
		)
	}
}

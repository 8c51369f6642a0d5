package checkout

import (
	"context"

	"kinmel-be/internal/cart"
	"kinmel-be/internal/logger"
	"kinmel-be/internal/product"

	"go.uber.org/zap"
)

// Catalog is the external catalog lookup checkout depends on.
type Catalog interface {
	GetProductPricing(ctx context.Context, productID int64) (*product.Pricing, error)
	GetVariantAdjustment(ctx context.Context, variantID, productID int64) (int64, error)
}

// Pricer computes effective unit prices for cart lines. It has no side
// effects; any stale catalog reference surfaces as *LookupError.
type Pricer struct {
	catalog Catalog
}

func NewPricer(catalog Catalog) *Pricer {
	return &Pricer{catalog: catalog}
}

// ResolveLines enriches every cart line with its vendor and unit price
// (base price + variant adjustment if a variant is selected). The first
// lookup failure aborts the whole resolution.
func (p *Pricer) ResolveLines(ctx context.Context, lines []cart.Line) ([]ResolvedLine, error) {
	resolved := make([]ResolvedLine, 0, len(lines))

	for _, line := range lines {
		pricing, err := p.catalog.GetProductPricing(ctx, line.ProductID)
		if err != nil {
			logger.FromCtx(ctx).Warn("cart line references missing product",
				zap.Int64("product_id", line.ProductID),
				zap.Error(err),
			)
			return nil, &LookupError{ProductID: line.ProductID, Err: err}
		}

		unitPrice := pricing.BasePrice
		if line.VariantID != nil {
			adjustment, err := p.catalog.GetVariantAdjustment(ctx, *line.VariantID, line.ProductID)
			if err != nil {
				logger.FromCtx(ctx).Warn("cart line references missing variant",
					zap.Int64("product_id", line.ProductID),
					zap.Int64("variant_id", *line.VariantID),
					zap.Error(err),
				)
				return nil, &LookupError{
					ProductID: line.ProductID,
					VariantID: line.VariantID,
					Err:       err,
				}
			}
			unitPrice += adjustment
		}

		resolved = append(resolved, ResolvedLine{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			VendorID:  pricing.VendorID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		})
	}

	return resolved, nil
}

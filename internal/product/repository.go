package product

import (
	"context"
	"database/sql"
	"errors"

	"kinmel-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProductPricing(ctx context.Context, productID int64) (*Pricing, error)
	GetVariantAdjustment(ctx context.Context, variantID, productID int64) (int64, error)
	GetProductByID(ctx context.Context, productID int64) (*Product, error)
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int32) ([]*Product, error)
	ListVariants(ctx context.Context, productID int64) ([]Variant, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetProductPricing resolves the base price and owning vendor for one
// product. A product deleted after being added to a cart maps to
// ErrProductNotFound so checkout can abort instead of pricing it at zero.
func (r *repository) GetProductPricing(
	ctx context.Context,
	productID int64,
) (*Pricing, error) {

	query := `
		SELECT base_price, vendor_id
		FROM products
		WHERE id = $1
	`

	var p Pricing
	err := r.db.QueryRowContext(ctx, query, productID).
		Scan(&p.BasePrice, &p.VendorID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query product pricing",
			zap.String("layer", "repository"),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)
		return nil, err
	}

	return &p, nil
}

// GetVariantAdjustment returns the price adjustment for a variant,
// verifying that the variant still belongs to the given product.
func (r *repository) GetVariantAdjustment(
	ctx context.Context,
	variantID, productID int64,
) (int64, error) {

	query := `
		SELECT price_adjustment
		FROM product_variants
		WHERE id = $1 AND product_id = $2
	`

	var adjustment int64
	err := r.db.QueryRowContext(ctx, query, variantID, productID).
		Scan(&adjustment)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrVariantNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query variant adjustment",
			zap.String("layer", "repository"),
			zap.Int64("variant_id", variantID),
			zap.Error(err),
		)
		return 0, err
	}

	return adjustment, nil
}

func (r *repository) GetProductByID(
	ctx context.Context,
	productID int64,
) (*Product, error) {

	query := `
		SELECT id, name, description, base_price, stock, vendor_id,
		       image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p Product
	err := r.db.QueryRowContext(ctx, query, productID).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.Stock,
		&p.VendorID,
		&p.ImageURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) ListByVendor(
	ctx context.Context,
	vendorID int64,
	limit, offset int32,
) ([]*Product, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByVendor"),
		zap.Int64("vendor_id", vendorID),
	)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, description, base_price, stock, vendor_id,
		       image_url, created_at, updated_at
		FROM products
		WHERE vendor_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, vendorID, limit, offset)
	if err != nil {
		log.Error("failed to query vendor products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.BasePrice,
			&p.Stock,
			&p.VendorID,
			&p.ImageURL,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return products, nil
}

func (r *repository) ListVariants(
	ctx context.Context,
	productID int64,
) ([]Variant, error) {

	query := `
		SELECT id, product_id, name, price_adjustment, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		var v Variant
		if err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.Name,
			&v.PriceAdjustment,
			&v.CreatedAt,
			&v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

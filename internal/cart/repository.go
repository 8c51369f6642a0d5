package cart

import (
	"context"
	"database/sql"
	"errors"

	"kinmel-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// GetOrCreate returns the customer's active cart id, creating the cart
	// on first use. Implemented as a single upsert keyed on the customer id
	// uniqueness constraint, never read-then-write.
	GetOrCreate(ctx context.Context, customerID int64) (int64, error)

	GetLineByCartProductVariant(ctx context.Context, cartID, productID int64, variantID *int64) (*Line, error)
	CreateLine(ctx context.Context, cartID, productID int64, variantID *int64, quantity int) (*Line, error)
	UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) (*Line, error)
	RemoveLine(ctx context.Context, customerID, lineID int64) error

	// LoadLines returns the cart's lines in insertion order.
	LoadLines(ctx context.Context, cartID int64) ([]Line, error)

	// ClaimForCheckout marks the customer's open cart as checking_out and
	// returns its id. ErrNoActiveCart when the customer has no cart,
	// ErrCheckoutInProgress when a claim is already held.
	ClaimForCheckout(ctx context.Context, customerID int64) (int64, error)

	// ReleaseClaim puts a claimed cart back to open.
	ReleaseClaim(ctx context.Context, cartID int64) error

	// Clear deletes every line of the cart and reopens it, as one
	// transaction keyed by cart id.
	Clear(ctx context.Context, cartID int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreate(ctx context.Context, customerID int64) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetOrCreate"),
		zap.Int64("customer_id", customerID),
	)

	// The no-op DO UPDATE makes RETURNING yield the id on conflict too.
	query := `
		INSERT INTO carts (customer_id, status)
		VALUES ($1, 'open')
		ON CONFLICT (customer_id)
		DO UPDATE SET updated_at = NOW()
		RETURNING id
	`

	var cartID int64
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&cartID); err != nil {
		log.Error("failed to upsert cart", zap.Error(err))
		return 0, err
	}

	return cartID, nil
}

func (r *repository) GetLineByCartProductVariant(
	ctx context.Context,
	cartID, productID int64,
	variantID *int64,
) (*Line, error) {

	query := `
		SELECT id, cart_id, product_id, variant_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		  AND product_id = $2
		  AND variant_id IS NOT DISTINCT FROM $3
	`

	var line Line
	err := r.db.QueryRowContext(ctx, query, cartID, productID, variantID).Scan(
		&line.ID,
		&line.CartID,
		&line.ProductID,
		&line.VariantID,
		&line.Quantity,
		&line.CreatedAt,
		&line.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &line, nil
}

func (r *repository) CreateLine(
	ctx context.Context,
	cartID, productID int64,
	variantID *int64,
	quantity int,
) (*Line, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateLine"),
		zap.Int64("cart_id", cartID),
		zap.Int64("product_id", productID),
	)

	query := `
		INSERT INTO cart_items (cart_id, product_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, cart_id, product_id, variant_id, quantity, created_at, updated_at
	`

	var line Line
	err := r.db.QueryRowContext(ctx, query, cartID, productID, variantID, quantity).Scan(
		&line.ID,
		&line.CartID,
		&line.ProductID,
		&line.VariantID,
		&line.Quantity,
		&line.CreatedAt,
		&line.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart line", zap.Error(err))
		return nil, err
	}

	log.Info("cart line created", zap.Int64("line_id", line.ID))
	return &line, nil
}

func (r *repository) UpdateLineQuantity(
	ctx context.Context,
	lineID int64,
	quantity int,
) (*Line, error) {

	query := `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, cart_id, product_id, variant_id, quantity, created_at, updated_at
	`

	var line Line
	err := r.db.QueryRowContext(ctx, query, quantity, lineID).Scan(
		&line.ID,
		&line.CartID,
		&line.ProductID,
		&line.VariantID,
		&line.Quantity,
		&line.CreatedAt,
		&line.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, err
	}

	return &line, nil
}

func (r *repository) RemoveLine(ctx context.Context, customerID, lineID int64) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $1
		  AND ci.cart_id = c.id
		  AND c.customer_id = $2
	`, lineID, customerID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrLineNotFound
	}

	return nil
}

func (r *repository) LoadLines(ctx context.Context, cartID int64) ([]Line, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "LoadLines"),
		zap.Int64("cart_id", cartID),
	)

	// id order is insertion order; the vendor partitioner relies on it.
	query := `
		SELECT id, cart_id, product_id, variant_id, quantity, created_at, updated_at
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, cartID)
	if err != nil {
		log.Error("failed to query cart lines", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var line Line
		if err := rows.Scan(
			&line.ID,
			&line.CartID,
			&line.ProductID,
			&line.VariantID,
			&line.Quantity,
			&line.CreatedAt,
			&line.UpdatedAt,
		); err != nil {
			log.Error("failed to scan cart line", zap.Error(err))
			return nil, err
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return lines, nil
}

func (r *repository) ClaimForCheckout(ctx context.Context, customerID int64) (int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ClaimForCheckout"),
		zap.Int64("customer_id", customerID),
	)

	query := `
		UPDATE carts
		SET status = 'checking_out', updated_at = NOW()
		WHERE customer_id = $1 AND status = 'open'
		RETURNING id
	`

	var cartID int64
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(&cartID)
	if err == nil {
		log.Debug("cart claimed", zap.Int64("cart_id", cartID))
		return cartID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Error("failed to claim cart", zap.Error(err))
		return 0, err
	}

	// Zero rows: either the customer has no cart at all, or a concurrent
	// checkout already holds the claim.
	var status Status
	err = r.db.QueryRowContext(ctx,
		`SELECT status FROM carts WHERE customer_id = $1`, customerID,
	).Scan(&status)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNoActiveCart
	}
	if err != nil {
		log.Error("failed to inspect cart status", zap.Error(err))
		return 0, err
	}

	if status == StatusCheckingOut {
		log.Warn("concurrent checkout claim rejected")
		return 0, ErrCheckoutInProgress
	}

	// Status flipped back between the two statements; treat as concurrent.
	return 0, ErrCheckoutInProgress
}

func (r *repository) ReleaseClaim(ctx context.Context, cartID int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE carts
		SET status = 'open', updated_at = NOW()
		WHERE id = $1 AND status = 'checking_out'
	`, cartID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrCartNotClaimed
	}

	return nil
}

func (r *repository) Clear(ctx context.Context, cartID int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Clear"),
		zap.Int64("cart_id", cartID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = $1`, cartID,
	); err != nil {
		log.Error("failed to delete cart items", zap.Error(err))
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE carts
		SET status = 'open', updated_at = NOW()
		WHERE id = $1
	`, cartID); err != nil {
		log.Error("failed to reopen cart", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit cart clear", zap.Error(err))
		return err
	}

	committed = true
	log.Info("cart cleared")
	return nil
}

package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kinmel-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// CreateWithDetails inserts one order and all of its detail rows as a
	// single transaction. On return the order's ID is populated. Either the
	// order and every detail exist, or nothing does.
	CreateWithDetails(ctx context.Context, o *Order, details []Detail) error

	FetchOrders(ctx context.Context, customerID int64, filter *FilterInput, limit, offset int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID int64) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID, vendorID int64, status Status) error
	SetExpectedDelivery(ctx context.Context, orderID, vendorID int64, date string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithDetails(ctx context.Context, o *Order, details []Detail) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateWithDetails"),
		zap.Int64("customer_id", o.CustomerID),
		zap.Int64("vendor_id", o.VendorID),
		zap.Int("detail_count", len(details)),
	)

	log.Debug("starting order transaction")

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
			} else {
				log.Debug("transaction rolled back")
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, vendor_id, status, total)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		o.CustomerID,
		o.VendorID,
		o.Status,
		o.Total,
	).Scan(&o.ID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i, d := range details {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_details (
				order_id, product_id, variant_id, quantity, price, address
			) VALUES ($1, $2, $3, $4, $5, $6)
		`,
			o.ID,
			d.ProductID,
			d.VariantID,
			d.Quantity,
			d.Price,
			d.Address,
		)
		if err != nil {
			log.Error("failed to insert order detail",
				zap.Int("detail_index", i),
				zap.Int64("product_id", d.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed",
		zap.Int64("order_id", o.ID),
		zap.Int64("total", o.Total),
	)

	return nil
}

func (r *repository) FetchOrders(
	ctx context.Context,
	customerID int64,
	filter *FilterInput,
	limit, offset int32,
) ([]*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "FetchOrders"),
		zap.Int64("customer_id", customerID),
	)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT o.id, o.customer_id, o.vendor_id, o.status, o.total,
		       o.expected_delivery_date, o.created_at, o.updated_at
		FROM orders o
		WHERE o.customer_id = $1
	`
	args := []any{customerID}

	if filter != nil {
		if filter.Status != nil {
			query += fmt.Sprintf(" AND o.status = $%d", len(args)+1)
			args = append(args, *filter.Status)
		}
		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", len(args)+1)
			args = append(args, *filter.DateFrom)
		}
		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", len(args)+1)
			args = append(args, *filter.DateTo)
		}
	}

	query += fmt.Sprintf(
		" ORDER BY o.created_at DESC LIMIT $%d OFFSET $%d",
		len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.VendorID,
			&o.Status,
			&o.Total,
			&o.ExpectedDeliveryDate,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	log.Debug("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID int64) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, vendor_id, status, total,
		       expected_delivery_date, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID,
		&o.CustomerID,
		&o.VendorID,
		&o.Status,
		&o.Total,
		&o.ExpectedDeliveryDate,
		&o.CreatedAt,
		&o.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, variant_id, quantity, price, address,
		       created_at, updated_at
		FROM order_details
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d Detail
		if err := rows.Scan(
			&d.ID,
			&d.OrderID,
			&d.ProductID,
			&d.VariantID,
			&d.Quantity,
			&d.Price,
			&d.Address,
			&d.CreatedAt,
			&d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		o.Details = append(o.Details, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

// UpdateOrderStatus is vendor-scoped: a vendor can only move its own orders.
func (r *repository) UpdateOrderStatus(ctx context.Context, orderID, vendorID int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND vendor_id = $3
	`, status, orderID, vendorID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *repository) SetExpectedDelivery(ctx context.Context, orderID, vendorID int64, date string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET expected_delivery_date = $1, updated_at = NOW()
		WHERE id = $2 AND vendor_id = $3
	`, date, orderID, vendorID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

package customer

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	GetByID(ctx context.Context, customerID int64) (*Customer, error)

	// EnsureExists mirrors the externally-authenticated identity into the
	// customers table so carts and orders have an FK target.
	EnsureExists(ctx context.Context, customerID int64, email, fullName string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, customerID int64) (*Customer, error) {
	query := `
		SELECT id, email, full_name, created_at, updated_at
		FROM customers
		WHERE id = $1
	`

	var c Customer
	err := r.db.QueryRowContext(ctx, query, customerID).Scan(
		&c.ID,
		&c.Email,
		&c.FullName,
		&c.CreatedAt,
		&c.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (r *repository) EnsureExists(ctx context.Context, customerID int64, email, fullName string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO customers (id, email, full_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    full_name = EXCLUDED.full_name,
		    updated_at = NOW()
	`, customerID, email, fullName)

	return err
}

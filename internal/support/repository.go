package support

import (
	"context"
	"database/sql"
	"errors"

	"kinmel-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	CreateTicket(ctx context.Context, params CreateTicketParams) (*Ticket, error)
	GetTicket(ctx context.Context, ticketID int64) (*Ticket, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int32) ([]*Ticket, error)
	UpdateStatus(ctx context.Context, ticketID int64, status TicketStatus) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateTicket(ctx context.Context, params CreateTicketParams) (*Ticket, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateTicket"),
		zap.Int64("customer_id", params.CustomerID),
	)

	query := `
		INSERT INTO support_tickets (customer_id, vendor_id, subject, description, status)
		VALUES ($1, $2, $3, $4, 'open')
		RETURNING id, customer_id, vendor_id, subject, description, status,
		          created_at, updated_at
	`

	var t Ticket
	err := r.db.QueryRowContext(ctx, query,
		params.CustomerID,
		params.VendorID,
		params.Subject,
		params.Description,
	).Scan(
		&t.ID,
		&t.CustomerID,
		&t.VendorID,
		&t.Subject,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create support ticket", zap.Error(err))
		return nil, err
	}

	log.Info("support ticket created", zap.Int64("ticket_id", t.ID))
	return &t, nil
}

func (r *repository) GetTicket(ctx context.Context, ticketID int64) (*Ticket, error) {
	query := `
		SELECT id, customer_id, vendor_id, subject, description, status,
		       created_at, updated_at
		FROM support_tickets
		WHERE id = $1
	`

	var t Ticket
	err := r.db.QueryRowContext(ctx, query, ticketID).Scan(
		&t.ID,
		&t.CustomerID,
		&t.VendorID,
		&t.Subject,
		&t.Description,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) ListByCustomer(
	ctx context.Context,
	customerID int64,
	limit, offset int32,
) ([]*Ticket, error) {

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, customer_id, vendor_id, subject, description, status,
		       created_at, updated_at
		FROM support_tickets
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []*Ticket
	for rows.Next() {
		var t Ticket
		if err := rows.Scan(
			&t.ID,
			&t.CustomerID,
			&t.VendorID,
			&t.Subject,
			&t.Description,
			&t.Status,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}

	return tickets, rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, ticketID int64, status TicketStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE support_tickets
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, ticketID)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTicketNotFound
	}

	return nil
}

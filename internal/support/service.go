package support

import (
	"context"
)

type Service interface {
	CreateTicket(ctx context.Context, params CreateTicketParams) (*Ticket, error)
	ListByCustomer(ctx context.Context, customerID int64, limit, offset int32) ([]*Ticket, error)
	UpdateStatus(ctx context.Context, ticketID int64, status TicketStatus) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateTicket(ctx context.Context, params CreateTicketParams) (*Ticket, error) {
	if params.Subject == "" {
		return nil, ErrMissingSubject
	}
	return s.repo.CreateTicket(ctx, params)
}

func (s *service) ListByCustomer(ctx context.Context, customerID int64, limit, offset int32) ([]*Ticket, error) {
	return s.repo.ListByCustomer(ctx, customerID, limit, offset)
}

// UpdateStatus enforces the open → in_progress → closed lifecycle;
// reopening a closed ticket is not allowed.
func (s *service) UpdateStatus(ctx context.Context, ticketID int64, status TicketStatus) error {
	ticket, err := s.repo.GetTicket(ctx, ticketID)
	if err != nil {
		return err
	}

	allowed := map[TicketStatus][]TicketStatus{
		StatusOpen:       {StatusInProgress, StatusClosed},
		StatusInProgress: {StatusClosed},
		StatusClosed:     {},
	}

	for _, next := range allowed[ticket.Status] {
		if next == status {
			return s.repo.UpdateStatus(ctx, ticketID, status)
		}
	}

	return ErrInvalidTransition
}

package order

import (
	"context"
)

type Service interface {
	GetOrders(ctx context.Context, customerID int64, filter *FilterInput, limit, offset int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, customerID, orderID int64) (*Order, error)
	UpdateOrderStatus(ctx context.Context, vendorID, orderID int64, status Status) error
	SetExpectedDelivery(ctx context.Context, vendorID, orderID int64, date string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOrders(ctx context.Context, customerID int64, filter *FilterInput, limit, offset int32) ([]*Order, error) {
	return s.repo.FetchOrders(ctx, customerID, filter, limit, offset)
}

// GetOrderDetail only returns orders owned by the requesting customer.
func (s *service) GetOrderDetail(ctx context.Context, customerID, orderID int64) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.CustomerID != customerID {
		return nil, ErrUnauthorized
	}

	return o, nil
}

// UpdateOrderStatus moves an order through the vendor lifecycle. Only
// transitions out of pending are allowed here; canceled is terminal.
func (s *service) UpdateOrderStatus(ctx context.Context, vendorID, orderID int64, status Status) error {
	validStatuses := map[Status]bool{
		StatusAccepted: true,
		StatusRejected: true,
		StatusCanceled: true,
	}

	if !validStatuses[status] {
		return ErrInvalidStatus
	}

	return s.repo.UpdateOrderStatus(ctx, orderID, vendorID, status)
}

func (s *service) SetExpectedDelivery(ctx context.Context, vendorID, orderID int64, date string) error {
	return s.repo.SetExpectedDelivery(ctx, orderID, vendorID, date)
}

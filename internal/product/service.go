package product

import (
	"context"
)

// Service exposes the read paths the storefront API serves directly.
// Checkout talks to the Repository itself for pricing lookups.
type Service interface {
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	ListByVendor(ctx context.Context, vendorID int64, limit, offset int32) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProduct(ctx context.Context, productID int64) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	variants, err := s.repo.ListVariants(ctx, productID)
	if err != nil {
		return nil, err
	}
	p.Variants = variants

	return p, nil
}

func (s *service) ListByVendor(ctx context.Context, vendorID int64, limit, offset int32) ([]*Product, error) {
	return s.repo.ListByVendor(ctx, vendorID, limit, offset)
}

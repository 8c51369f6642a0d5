package cart

import (
	"context"

	"kinmel-be/internal/product"
)

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*Line, error)
	GetCart(ctx context.Context, customerID int64) (*Cart, error)
	UpdateItemQuantity(ctx context.Context, params UpdateItemParams) (*Line, error)
	RemoveItem(ctx context.Context, customerID, lineID int64) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

// NewService creates a new cart service
func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddItem adds a product to the customer's cart, creating the cart lazily
// on first add. Adding the same product+variant again merges quantities.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*Line, error) {
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	// Only existing products can enter a cart; the variant must still
	// belong to the product.
	if _, err := s.productRepo.GetProductPricing(ctx, params.ProductID); err != nil {
		return nil, err
	}
	if params.VariantID != nil {
		if _, err := s.productRepo.GetVariantAdjustment(ctx, *params.VariantID, params.ProductID); err != nil {
			return nil, err
		}
	}

	cartID, err := s.repo.GetOrCreate(ctx, params.CustomerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetLineByCartProductVariant(ctx, cartID, params.ProductID, params.VariantID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return s.repo.CreateLine(ctx, cartID, params.ProductID, params.VariantID, params.Quantity)
	}

	return s.repo.UpdateLineQuantity(ctx, existing.ID, existing.Quantity+params.Quantity)
}

func (s *service) GetCart(ctx context.Context, customerID int64) (*Cart, error) {
	cartID, err := s.repo.GetOrCreate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.LoadLines(ctx, cartID)
	if err != nil {
		return nil, err
	}

	return &Cart{
		ID:         cartID,
		CustomerID: customerID,
		Status:     StatusOpen,
		Lines:      lines,
	}, nil
}

// UpdateItemQuantity updates a line's quantity; zero or negative removes it.
func (s *service) UpdateItemQuantity(ctx context.Context, params UpdateItemParams) (*Line, error) {
	if params.Quantity <= 0 {
		if err := s.repo.RemoveLine(ctx, params.CustomerID, params.LineID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return s.repo.UpdateLineQuantity(ctx, params.LineID, params.Quantity)
}

func (s *service) RemoveItem(ctx context.Context, customerID, lineID int64) error {
	return s.repo.RemoveLine(ctx, customerID, lineID)
}

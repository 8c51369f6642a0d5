package cart

import (
	"context"
	"testing"

	"kinmel-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOrCreate(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetLineByCartProductVariant(ctx context.Context, cartID, productID int64, variantID *int64) (*Line, error) {
	args := m.Called(ctx, cartID, productID, variantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Line), args.Error(1)
}

func (m *MockRepository) CreateLine(ctx context.Context, cartID, productID int64, variantID *int64, quantity int) (*Line, error) {
	args := m.Called(ctx, cartID, productID, variantID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Line), args.Error(1)
}

func (m *MockRepository) UpdateLineQuantity(ctx context.Context, lineID int64, quantity int) (*Line, error) {
	args := m.Called(ctx, lineID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Line), args.Error(1)
}

func (m *MockRepository) RemoveLine(ctx context.Context, customerID, lineID int64) error {
	args := m.Called(ctx, customerID, lineID)
	return args.Error(0)
}

func (m *MockRepository) LoadLines(ctx context.Context, cartID int64) ([]Line, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Line), args.Error(1)
}

func (m *MockRepository) ClaimForCheckout(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ReleaseClaim(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

func (m *MockRepository) Clear(ctx context.Context, cartID int64) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of product.Repository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetProductPricing(ctx context.Context, productID int64) (*product.Pricing, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Pricing), args.Error(1)
}

func (m *MockProductRepository) GetVariantAdjustment(ctx context.Context, variantID, productID int64) (int64, error) {
	args := m.Called(ctx, variantID, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, productID int64) (*product.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) ListByVendor(ctx context.Context, vendorID int64, limit, offset int32) ([]*product.Product, error) {
	args := m.Called(ctx, vendorID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*product.Product), args.Error(1)
}

func (m *MockProductRepository) ListVariants(ctx context.Context, productID int64) ([]product.Variant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Variant), args.Error(1)
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesNewLine", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepository)

		products.On("GetProductPricing", ctx, int64(100)).
			Return(&product.Pricing{BasePrice: 3500, VendorID: 1}, nil)
		repo.On("GetOrCreate", ctx, int64(42)).Return(int64(7), nil)
		repo.On("GetLineByCartProductVariant", ctx, int64(7), int64(100), (*int64)(nil)).
			Return(nil, nil)
		repo.On("CreateLine", ctx, int64(7), int64(100), (*int64)(nil), 2).
			Return(&Line{ID: 1, CartID: 7, ProductID: 100, Quantity: 2}, nil)

		svc := NewService(repo, products)
		line, err := svc.AddItem(ctx, AddItemParams{CustomerID: 42, ProductID: 100, Quantity: 2})

		require.NoError(t, err)
		assert.Equal(t, 2, line.Quantity)
		repo.AssertNotCalled(t, "UpdateLineQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MergesQuantitiesForSameProductVariant", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepository)

		variantID := int64Ptr(9)
		products.On("GetProductPricing", ctx, int64(100)).
			Return(&product.Pricing{BasePrice: 3500, VendorID: 1}, nil)
		products.On("GetVariantAdjustment", ctx, int64(9), int64(100)).
			Return(int64(500), nil)
		repo.On("GetOrCreate", ctx, int64(42)).Return(int64(7), nil)
		repo.On("GetLineByCartProductVariant", ctx, int64(7), int64(100), variantID).
			Return(&Line{ID: 3, CartID: 7, ProductID: 100, VariantID: variantID, Quantity: 2}, nil)
		repo.On("UpdateLineQuantity", ctx, int64(3), 5).
			Return(&Line{ID: 3, CartID: 7, ProductID: 100, VariantID: variantID, Quantity: 5}, nil)

		svc := NewService(repo, products)
		line, err := svc.AddItem(ctx, AddItemParams{
			CustomerID: 42, ProductID: 100, VariantID: variantID, Quantity: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, 5, line.Quantity)
		repo.AssertNotCalled(t, "CreateLine",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("RejectsNonPositiveQuantity", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockProductRepository))

		_, err := svc.AddItem(ctx, AddItemParams{CustomerID: 42, ProductID: 100, Quantity: 0})
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, err = svc.AddItem(ctx, AddItemParams{CustomerID: 42, ProductID: 100, Quantity: -1})
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("RejectsUnknownProduct", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepository)

		products.On("GetProductPricing", ctx, int64(999)).
			Return(nil, product.ErrProductNotFound)

		svc := NewService(repo, products)
		_, err := svc.AddItem(ctx, AddItemParams{CustomerID: 42, ProductID: 999, Quantity: 1})

		assert.ErrorIs(t, err, product.ErrProductNotFound)
		repo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	})

	t.Run("RejectsVariantOfAnotherProduct", func(t *testing.T) {
		repo := new(MockRepository)
		products := new(MockProductRepository)

		products.On("GetProductPricing", ctx, int64(100)).
			Return(&product.Pricing{BasePrice: 3500, VendorID: 1}, nil)
		products.On("GetVariantAdjustment", ctx, int64(77), int64(100)).
			Return(int64(0), product.ErrVariantNotFound)

		svc := NewService(repo, products)
		_, err := svc.AddItem(ctx, AddItemParams{
			CustomerID: 42, ProductID: 100, VariantID: int64Ptr(77), Quantity: 1,
		})

		assert.ErrorIs(t, err, product.ErrVariantNotFound)
		repo.AssertNotCalled(t, "GetOrCreate", mock.Anything, mock.Anything)
	})
}

func TestService_UpdateItemQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesQuantity", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("UpdateLineQuantity", ctx, int64(3), 4).
			Return(&Line{ID: 3, Quantity: 4}, nil)

		svc := NewService(repo, new(MockProductRepository))
		line, err := svc.UpdateItemQuantity(ctx, UpdateItemParams{CustomerID: 42, LineID: 3, Quantity: 4})

		require.NoError(t, err)
		assert.Equal(t, 4, line.Quantity)
	})

	t.Run("ZeroQuantityRemovesLine", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("RemoveLine", ctx, int64(42), int64(3)).Return(nil)

		svc := NewService(repo, new(MockProductRepository))
		line, err := svc.UpdateItemQuantity(ctx, UpdateItemParams{CustomerID: 42, LineID: 3, Quantity: 0})

		require.NoError(t, err)
		assert.Nil(t, line)
		repo.AssertNotCalled(t, "UpdateLineQuantity", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_GetCart(t *testing.T) {
	ctx := context.Background()

	repo := new(MockRepository)
	repo.On("GetOrCreate", ctx, int64(42)).Return(int64(7), nil)
	repo.On("LoadLines", ctx, int64(7)).Return([]Line{
		{ID: 1, CartID: 7, ProductID: 100, Quantity: 2},
	}, nil)

	svc := NewService(repo, new(MockProductRepository))
	c, err := svc.GetCart(ctx, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, StatusOpen, c.Status)
	require.Len(t, c.Lines, 1)
}

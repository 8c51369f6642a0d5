package product

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetProductPricing(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsBasePriceAndVendor", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT base_price, vendor_id")).
			WithArgs(int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"base_price", "vendor_id"}).
				AddRow(int64(3500), int64(1)))

		repo := NewRepository(db)
		pricing, err := repo.GetProductPricing(ctx, 100)

		require.NoError(t, err)
		assert.Equal(t, int64(3500), pricing.BasePrice)
		assert.Equal(t, int64(1), pricing.VendorID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeletedProductMapsToNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT base_price, vendor_id")).
			WithArgs(int64(999)).
			WillReturnRows(sqlmock.NewRows([]string{"base_price", "vendor_id"}))

		repo := NewRepository(db)
		pricing, err := repo.GetProductPricing(ctx, 999)

		assert.Nil(t, pricing)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_GetVariantAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsAdjustment", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT price_adjustment")).
			WithArgs(int64(9), int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"price_adjustment"}).AddRow(int64(500)))

		repo := NewRepository(db)
		adjustment, err := repo.GetVariantAdjustment(ctx, 9, 100)

		require.NoError(t, err)
		assert.Equal(t, int64(500), adjustment)
	})

	t.Run("VariantOfAnotherProductMapsToNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// The variant exists but under product 200, so the ownership-scoped
		// query matches nothing.
		mock.ExpectQuery(regexp.QuoteMeta("SELECT price_adjustment")).
			WithArgs(int64(9), int64(100)).
			WillReturnRows(sqlmock.NewRows([]string{"price_adjustment"}))

		repo := NewRepository(db)
		_, err = repo.GetVariantAdjustment(ctx, 9, 100)

		assert.ErrorIs(t, err, ErrVariantNotFound)
	})
}

func TestRepository_ListByVendor(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "name", "description", "base_price", "stock", "vendor_id",
		"image_url", "created_at", "updated_at",
	}).
		AddRow(int64(1), "Dhaka Topi", "Handwoven", int64(3500), 10, int64(1), nil, now, now).
		AddRow(int64(2), "Khukuri", "Steel blade", int64(7000), 5, int64(1), nil, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, base_price, stock, vendor_id")).
		WithArgs(int64(1), int32(20), int32(0)).
		WillReturnRows(rows)

	repo := NewRepository(db)
	products, err := repo.ListByVendor(ctx, 1, 20, 0)

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Dhaka Topi", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_CreateWithDetails(t *testing.T) {
	ctx := context.Background()

	variantID := int64(9)
	details := []Detail{
		{ProductID: 100, Quantity: 2, Price: 3500, Address: "Patan"},
		{ProductID: 200, VariantID: &variantID, Quantity: 1, Price: 7500, Address: "Patan"},
	}

	t.Run("CommitsOrderAndDetails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		o := &Order{CustomerID: 42, VendorID: 1, Status: StatusPending, Total: 14500}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
			WithArgs(o.CustomerID, o.VendorID, o.Status, o.Total).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(55)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_details")).
			WithArgs(int64(55), int64(100), nil, 2, int64(3500), "Patan").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_details")).
			WithArgs(int64(55), int64(200), &variantID, 1, int64(7500), "Patan").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		repo := NewRepository(db)
		err = repo.CreateWithDetails(ctx, o, details)

		require.NoError(t, err)
		assert.Equal(t, int64(55), o.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenDetailInsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		o := &Order{CustomerID: 42, VendorID: 1, Status: StatusPending, Total: 14500}
		insertErr := errors.New("insert failed")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
			WithArgs(o.CustomerID, o.VendorID, o.Status, o.Total).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(55)))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_details")).
			WithArgs(int64(55), int64(100), nil, 2, int64(3500), "Patan").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_details")).
			WithArgs(int64(55), int64(200), &variantID, 1, int64(7500), "Patan").
			WillReturnError(insertErr)
		mock.ExpectRollback()

		repo := NewRepository(db)
		err = repo.CreateWithDetails(ctx, o, details)

		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackWhenOrderInsertFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		o := &Order{CustomerID: 42, VendorID: 1, Status: StatusPending, Total: 7000}
		insertErr := errors.New("orders insert failed")

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO orders")).
			WillReturnError(insertErr)
		mock.ExpectRollback()

		repo := NewRepository(db)
		err = repo.CreateWithDetails(ctx, o, details[:1])

		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FetchOrders(t *testing.T) {
	ctx := context.Background()

	cols := []string{
		"id", "customer_id", "vendor_id", "status", "total",
		"expected_delivery_date", "created_at", "updated_at",
	}

	t.Run("ReturnsCustomerOrders", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		mock.ExpectQuery("SELECT (.+) FROM orders o WHERE o.customer_id = \\$1").
			WithArgs(int64(42), int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(2), int64(42), int64(5), "pending", int64(7500), nil, now, now).
				AddRow(int64(1), int64(42), int64(3), "accepted", int64(7000), nil, now, now))

		repo := NewRepository(db)
		orders, err := repo.FetchOrders(ctx, 42, nil, 20, 0)

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, int64(2), orders[0].ID)
		assert.Equal(t, StatusPending, orders[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AppliesStatusFilter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		status := StatusAccepted
		mock.ExpectQuery("SELECT (.+) FROM orders o WHERE o.customer_id = \\$1 AND o.status = \\$2").
			WithArgs(int64(42), status, int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(cols))

		repo := NewRepository(db)
		orders, err := repo.FetchOrders(ctx, 42, &FilterInput{Status: &status}, 20, 0)

		require.NoError(t, err)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_UpdateOrderStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("UpdatesOwnOrder", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
			WithArgs(StatusAccepted, int64(55), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRepository(db)
		err = repo.UpdateOrderStatus(ctx, 55, 1, StatusAccepted)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFoundForOtherVendor", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE orders")).
			WithArgs(StatusAccepted, int64(55), int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewRepository(db)
		err = repo.UpdateOrderStatus(ctx, 55, 99, StatusAccepted)

		assert.ErrorIs(t, err, ErrOrderNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

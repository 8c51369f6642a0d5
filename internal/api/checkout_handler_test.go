package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kinmel-be/internal/cart"
	"kinmel-be/internal/checkout"
	"kinmel-be/internal/middleware"
	"kinmel-be/internal/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of checkout.Service
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, customerID int64, address string) (*checkout.Result, error) {
	args := m.Called(ctx, customerID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Result), args.Error(1)
}

func checkoutRequestWithIdentity(t *testing.T, body string, customerID int64) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	ctx := context.WithValue(req.Context(), middleware.CustomerIDKey, customerID)
	return req.WithContext(ctx)
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	t.Run("AllVendorsCreated", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("Checkout", mock.Anything, int64(42), "Patan").Return(&checkout.Result{
			PerVendor: []checkout.VendorOutcome{
				{VendorID: 1, OrderID: 10, Status: checkout.OutcomeCreated},
				{VendorID: 2, OrderID: 11, Status: checkout.OutcomeCreated},
			},
			CartCleared: true,
		}, nil)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":"Patan"}`, 42))

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp checkoutResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 2, resp.Created)
		assert.True(t, resp.CartCleared)
		require.Len(t, resp.PerVendor, 2)
		require.NotNil(t, resp.PerVendor[0].OrderID)
		assert.Equal(t, int64(10), *resp.PerVendor[0].OrderID)
	})

	t.Run("PartialFailureIsMultiStatus", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("Checkout", mock.Anything, int64(42), "Patan").Return(&checkout.Result{
			PerVendor: []checkout.VendorOutcome{
				{VendorID: 1, OrderID: 10, Status: checkout.OutcomeCreated},
				{VendorID: 2, Status: checkout.OutcomeFailed, Err: errors.New("connection reset")},
			},
		}, nil)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":"Patan"}`, 42))

		assert.Equal(t, http.StatusMultiStatus, rec.Code)

		var resp checkoutResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 1, resp.Created)
		assert.False(t, resp.CartCleared)
		assert.Equal(t, "failed", resp.PerVendor[1].Status)
		assert.NotEmpty(t, resp.PerVendor[1].Error)
		assert.Nil(t, resp.PerVendor[1].OrderID)
	})

	t.Run("EmptyCartIsOK", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("Checkout", mock.Anything, int64(42), "Patan").
			Return(&checkout.Result{}, nil)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":"Patan"}`, 42))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("ConcurrentCheckoutIsConflict", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("Checkout", mock.Anything, int64(42), "Patan").
			Return(nil, cart.ErrCheckoutInProgress)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":"Patan"}`, 42))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("StaleLineIsUnprocessable", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("Checkout", mock.Anything, int64(42), "Patan").
			Return(nil, &checkout.LookupError{ProductID: 999, Err: product.ErrProductNotFound})

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":"Patan"}`, 42))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("MissingAddressIsBadRequest", func(t *testing.T) {
		svc := new(MockCheckoutService)
		svc.On("Checkout", mock.Anything, int64(42), "").
			Return(nil, checkout.ErrMissingAddress)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":""}`, 42))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NoIdentityIsUnauthorized", func(t *testing.T) {
		svc := new(MockCheckoutService)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"address":"Patan"}`))
		h.Checkout(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		svc.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedBodyIsBadRequest", func(t *testing.T) {
		svc := new(MockCheckoutService)

		h := NewCheckoutHandler(svc)
		rec := httptest.NewRecorder()
		h.Checkout(rec, checkoutRequestWithIdentity(t, `{"address":`, 42))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})
}

package api

import (
	"errors"
	"net/http"

	"kinmel-be/internal/cart"
	"kinmel-be/internal/checkout"
	"kinmel-be/internal/middleware"
)

type CheckoutHandler struct {
	svc checkout.Service
}

func NewCheckoutHandler(svc checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

type checkoutRequest struct {
	Address string `json:"address"`
}

type vendorOutcomeResponse struct {
	VendorID int64  `json:"vendor_id"`
	OrderID  *int64 `json:"order_id,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

type checkoutResponse struct {
	PerVendor   []vendorOutcomeResponse `json:"per_vendor"`
	Created     int                     `json:"created"`
	CartCleared bool                    `json:"cart_cleared"`
}

// Checkout converts the caller's cart into one pending order per vendor.
// Partial success is reported per vendor, never collapsed into one flag:
// 201 everything created, 207 mixed outcomes, 200 empty-cart no-op,
// 409 a checkout is already in flight, 422 a cart line went stale.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Checkout(r.Context(), customerID, req.Address)
	if err != nil {
		var lookupErr *checkout.LookupError
		switch {
		case errors.Is(err, checkout.ErrMissingAddress):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrCheckoutInProgress):
			respondError(w, http.StatusConflict, err.Error())
		case errors.As(err, &lookupErr):
			respondError(w, http.StatusUnprocessableEntity, lookupErr.Error())
		default:
			respondError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	resp := checkoutResponse{
		PerVendor:   make([]vendorOutcomeResponse, 0, len(result.PerVendor)),
		Created:     result.Created(),
		CartCleared: result.CartCleared,
	}
	for _, o := range result.PerVendor {
		out := vendorOutcomeResponse{
			VendorID: o.VendorID,
			Status:   string(o.Status),
		}
		if o.Status == checkout.OutcomeCreated {
			orderID := o.OrderID
			out.OrderID = &orderID
		} else if o.Err != nil {
			out.Error = o.Err.Error()
		}
		resp.PerVendor = append(resp.PerVendor, out)
	}

	status := http.StatusCreated
	switch {
	case len(resp.PerVendor) == 0:
		// Empty cart no-op.
		status = http.StatusOK
	case resp.Created < len(resp.PerVendor):
		status = http.StatusMultiStatus
	}

	respondJSON(w, status, resp)
}

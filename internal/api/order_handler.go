package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"kinmel-be/internal/middleware"
	"kinmel-be/internal/order"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	svc order.Service
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderDetailResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Address   string `json:"address"`
}

type orderResponse struct {
	ID                   int64                 `json:"id"`
	VendorID             int64                 `json:"vendor_id"`
	Status               string                `json:"status"`
	Total                int64                 `json:"total"`
	ExpectedDeliveryDate *string               `json:"expected_delivery_date,omitempty"`
	Details              []orderDetailResponse `json:"details,omitempty"`
}

func toOrderResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		ID:       o.ID,
		VendorID: o.VendorID,
		Status:   string(o.Status),
		Total:    o.Total,
	}
	if o.ExpectedDeliveryDate != nil {
		date := o.ExpectedDeliveryDate.Format("2006-01-02")
		resp.ExpectedDeliveryDate = &date
	}
	for _, d := range o.Details {
		resp.Details = append(resp.Details, orderDetailResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			VariantID: d.VariantID,
			Quantity:  d.Quantity,
			Price:     d.Price,
			Address:   d.Address,
		})
	}
	return resp
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var filter *order.FilterInput
	if s := r.URL.Query().Get("status"); s != "" {
		status := order.Status(s)
		filter = &order.FilterInput{Status: &status}
	}

	limit := queryInt32(r, "limit", 20)
	offset := queryInt32(r, "offset", 0)

	orders, err := h.svc.GetOrders(r.Context(), customerID, filter, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.svc.GetOrderDetail(r.Context(), customerID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrUnauthorized):
			respondError(w, http.StatusForbidden, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to load order")
		}
		return
	}

	respondJSON(w, http.StatusOK, toOrderResponse(o))
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus lets the authenticated vendor accept or reject its orders.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.VendorIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "vendor authentication required")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.UpdateOrderStatus(r.Context(), vendorID, orderID, order.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, order.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to update order")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

type setDeliveryDateRequest struct {
	Date string `json:"date"`
}

// SetDeliveryDate lets the vendor publish an expected delivery date for
// one of its orders.
func (h *OrderHandler) SetDeliveryDate(w http.ResponseWriter, r *http.Request) {
	vendorID, ok := middleware.VendorIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "vendor authentication required")
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req setDeliveryDateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		respondError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	err = h.svc.SetExpectedDelivery(r.Context(), vendorID, orderID, req.Date)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to set delivery date")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func queryInt32(r *http.Request, key string, fallback int32) int32 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(n)
}

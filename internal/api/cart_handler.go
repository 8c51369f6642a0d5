package api

import (
	"errors"
	"net/http"
	"strconv"

	"kinmel-be/internal/cart"
	"kinmel-be/internal/middleware"
	"kinmel-be/internal/product"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	svc cart.Service
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

type cartLineResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

type cartResponse struct {
	ID    int64              `json:"id"`
	Lines []cartLineResponse `json:"lines"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	c, err := h.svc.GetCart(r.Context(), customerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	resp := cartResponse{ID: c.ID, Lines: make([]cartLineResponse, 0, len(c.Lines))}
	for _, line := range c.Lines {
		resp.Lines = append(resp.Lines, cartLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

type addItemRequest struct {
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.svc.AddItem(r.Context(), cart.AddItemParams{
		CustomerID: customerID,
		ProductID:  req.ProductID,
		VariantID:  req.VariantID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, product.ErrProductNotFound),
			errors.Is(err, product.ErrVariantNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to add item")
		}
		return
	}

	respondJSON(w, http.StatusCreated, cartLineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		VariantID: line.VariantID,
		Quantity:  line.Quantity,
	})
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	lineID, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.svc.UpdateItemQuantity(r.Context(), cart.UpdateItemParams{
		CustomerID: customerID,
		LineID:     lineID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	// Quantity <= 0 removed the line.
	if line == nil {
		respondJSON(w, http.StatusNoContent, nil)
		return
	}

	respondJSON(w, http.StatusOK, cartLineResponse{
		ID:        line.ID,
		ProductID: line.ProductID,
		VariantID: line.VariantID,
		Quantity:  line.Quantity,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	lineID, err := strconv.ParseInt(chi.URLParam(r, "lineID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid line id")
		return
	}

	if err := h.svc.RemoveItem(r.Context(), customerID, lineID); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to remove item")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

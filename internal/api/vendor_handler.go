package api

import (
	"errors"
	"net/http"
	"strconv"

	"kinmel-be/internal/middleware"
	"kinmel-be/internal/product"
	"kinmel-be/internal/vendor"

	"github.com/go-chi/chi/v5"
)

type VendorHandler struct {
	svc      vendor.Service
	products product.Service
}

func NewVendorHandler(svc vendor.Service, products product.Service) *VendorHandler {
	return &VendorHandler{svc: svc, products: products}
}

type vendorResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	ShopName string  `json:"shop_name"`
	Address  string  `json:"address"`
	Rating   float64 `json:"rating"`
	Status   string  `json:"status"`
}

func toVendorResponse(v *vendor.Vendor) vendorResponse {
	return vendorResponse{
		ID:       v.ID,
		Name:     v.Name,
		ShopName: v.ShopName,
		Address:  v.Address,
		Rating:   v.Rating,
		Status:   string(v.Status),
	}
}

type registerVendorRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ShopName     string `json:"shop_name"`
	Address      string `json:"address"`
	OwnerContact string `json:"owner_contact"`
}

func (h *VendorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerVendorRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" || req.ShopName == "" {
		respondError(w, http.StatusBadRequest, "email, password and shop_name are required")
		return
	}

	v, err := h.svc.Register(r.Context(), vendor.CreateParams{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		ShopName:     req.ShopName,
		Address:      req.Address,
		OwnerContact: req.OwnerContact,
	})
	if err != nil {
		if errors.Is(err, vendor.ErrEmailTaken) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to register vendor")
		return
	}

	respondJSON(w, http.StatusCreated, toVendorResponse(v))
}

type updateVendorStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus lets a vendor deactivate or reactivate its own shop.
func (h *VendorHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	authedVendorID, ok := middleware.VendorIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "vendor authentication required")
		return
	}

	vendorID, err := strconv.ParseInt(chi.URLParam(r, "vendorID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}
	if vendorID != authedVendorID {
		respondError(w, http.StatusForbidden, "cannot change another vendor's status")
		return
	}

	var req updateVendorStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.UpdateStatus(r.Context(), vendorID, vendor.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, vendor.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, vendor.ErrVendorNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to update vendor")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	limit := queryInt32(r, "limit", 20)
	offset := queryInt32(r, "offset", 0)

	vendors, err := h.svc.ListActive(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list vendors")
		return
	}

	resp := make([]vendorResponse, 0, len(vendors))
	for _, v := range vendors {
		resp = append(resp, toVendorResponse(v))
	}

	respondJSON(w, http.StatusOK, resp)
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "vendorID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	v, err := h.svc.GetVendor(r.Context(), vendorID)
	if err != nil {
		if errors.Is(err, vendor.ErrVendorNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load vendor")
		return
	}

	respondJSON(w, http.StatusOK, toVendorResponse(v))
}

type productResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	BasePrice int64   `json:"base_price"`
	Stock     int     `json:"stock"`
	ImageURL  *string `json:"image_url,omitempty"`
}

func (h *VendorHandler) ListVendorProducts(w http.ResponseWriter, r *http.Request) {
	vendorID, err := strconv.ParseInt(chi.URLParam(r, "vendorID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid vendor id")
		return
	}

	limit := queryInt32(r, "limit", 20)
	offset := queryInt32(r, "offset", 0)

	products, err := h.products.ListByVendor(r.Context(), vendorID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productResponse{
			ID:        p.ID,
			Name:      p.Name,
			BasePrice: p.BasePrice,
			Stock:     p.Stock,
			ImageURL:  p.ImageURL,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

package api

import (
	"errors"
	"net/http"

	"kinmel-be/internal/customer"
	"kinmel-be/internal/middleware"
)

type CustomerHandler struct {
	repo customer.Repository
}

func NewCustomerHandler(repo customer.Repository) *CustomerHandler {
	return &CustomerHandler{repo: repo}
}

type customerResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

func (h *CustomerHandler) Me(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	c, err := h.repo.GetByID(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, customerResponse{
		ID:       c.ID,
		Email:    c.Email,
		FullName: c.FullName,
	})
}

// SyncProfile mirrors the identity-provider profile into the customers
// table so carts and orders have an FK target. Called by the storefront
// after login; idempotent.
func (h *CustomerHandler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	claims, _ := middleware.ClaimsFrom(r.Context())
	email, _ := claims["email"].(string)
	fullName, _ := claims["name"].(string)

	if err := h.repo.EnsureExists(r.Context(), customerID, email, fullName); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to sync profile")
		return
	}

	respondJSON(w, http.StatusOK, customerResponse{
		ID:       customerID,
		Email:    email,
		FullName: fullName,
	})
}

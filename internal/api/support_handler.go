package api

import (
	"errors"
	"net/http"
	"strconv"

	"kinmel-be/internal/middleware"
	"kinmel-be/internal/support"

	"github.com/go-chi/chi/v5"
)

type SupportHandler struct {
	svc support.Service
}

func NewSupportHandler(svc support.Service) *SupportHandler {
	return &SupportHandler{svc: svc}
}

type createTicketRequest struct {
	VendorID    *int64  `json:"vendor_id,omitempty"`
	Subject     string  `json:"subject"`
	Description *string `json:"description,omitempty"`
}

type ticketResponse struct {
	ID          int64   `json:"id"`
	VendorID    *int64  `json:"vendor_id,omitempty"`
	Subject     string  `json:"subject"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
}

func toTicketResponse(t *support.Ticket) ticketResponse {
	return ticketResponse{
		ID:          t.ID,
		VendorID:    t.VendorID,
		Subject:     t.Subject,
		Description: t.Description,
		Status:      string(t.Status),
	}
}

func (h *SupportHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.svc.CreateTicket(r.Context(), support.CreateTicketParams{
		CustomerID:  customerID,
		VendorID:    req.VendorID,
		Subject:     req.Subject,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, support.ErrMissingSubject) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create ticket")
		return
	}

	respondJSON(w, http.StatusCreated, toTicketResponse(ticket))
}

func (h *SupportHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.CustomerIDFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit := queryInt32(r, "limit", 20)
	offset := queryInt32(r, "offset", 0)

	tickets, err := h.svc.ListByCustomer(r.Context(), customerID, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list tickets")
		return
	}

	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, toTicketResponse(t))
	}

	respondJSON(w, http.StatusOK, resp)
}

type updateTicketStatusRequest struct {
	Status string `json:"status"`
}

func (h *SupportHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.CustomerIDFrom(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	ticketID, err := strconv.ParseInt(chi.URLParam(r, "ticketID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid ticket id")
		return
	}

	var req updateTicketStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.svc.UpdateStatus(r.Context(), ticketID, support.TicketStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, support.ErrTicketNotFound):
			respondError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, support.ErrInvalidTransition):
			respondError(w, http.StatusConflict, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "failed to update ticket")
		}
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

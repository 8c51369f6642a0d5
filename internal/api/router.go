package api

import (
	"net/http"
	"time"

	"kinmel-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Customer *CustomerHandler
	Order    *OrderHandler
	Vendor   *VendorHandler
	Support  *SupportHandler
}

// NewRouter wires all HTTP routes with the shared middleware chain.
func NewRouter(h Handlers, jwtSecret []byte) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.AuthMiddleware(jwtSecret))
	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.LoggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.Customer.Me)
			r.Put("/", h.Customer.SyncProfile)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Post("/items", h.Cart.AddItem)
			r.Patch("/items/{lineID}", h.Cart.UpdateItem)
			r.Delete("/items/{lineID}", h.Cart.RemoveItem)
		})

		r.Post("/checkout", h.Checkout.Checkout)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Order.ListOrders)
			r.Get("/{orderID}", h.Order.GetOrder)
			r.Patch("/{orderID}/status", h.Order.UpdateStatus)
			r.Patch("/{orderID}/delivery-date", h.Order.SetDeliveryDate)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.Post("/", h.Vendor.Register)
			r.Get("/", h.Vendor.ListVendors)
			r.Get("/{vendorID}", h.Vendor.GetVendor)
			r.Patch("/{vendorID}/status", h.Vendor.UpdateStatus)
			r.Get("/{vendorID}/products", h.Vendor.ListVendorProducts)
		})

		r.Route("/support-tickets", func(r chi.Router) {
			r.Post("/", h.Support.CreateTicket)
			r.Get("/", h.Support.ListTickets)
			r.Patch("/{ticketID}/status", h.Support.UpdateStatus)
		})
	})

	return r
}

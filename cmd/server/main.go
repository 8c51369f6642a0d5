package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kinmel-be/internal/api"
	"kinmel-be/internal/cart"
	"kinmel-be/internal/checkout"
	"kinmel-be/internal/config"
	"kinmel-be/internal/customer"
	"kinmel-be/internal/db"
	"kinmel-be/internal/logger"
	"kinmel-be/internal/metrics"
	"kinmel-be/internal/order"
	"kinmel-be/internal/product"
	"kinmel-be/internal/support"
	"kinmel-be/internal/vendor"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	customerRepo := customer.NewRepository(database)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	vendorRepo := vendor.NewRepository(database)
	vendorSvc := vendor.NewService(vendorRepo)

	supportRepo := support.NewRepository(database)
	supportSvc := support.NewService(supportRepo)

	checkoutMetrics := metrics.NewCheckout(nil)
	checkoutSvc := checkout.NewService(cartRepo, productRepo, orderRepo, checkoutMetrics)

	router := api.NewRouter(api.Handlers{
		Cart:     api.NewCartHandler(cartSvc),
		Checkout: api.NewCheckoutHandler(checkoutSvc),
		Customer: api.NewCustomerHandler(customerRepo),
		Order:    api.NewOrderHandler(orderSvc),
		Vendor:   api.NewVendorHandler(vendorSvc, productSvc),
		Support:  api.NewSupportHandler(supportSvc),
	}, []byte(cfg.JWTSecret))

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 kinmel server running at http://localhost:%s/", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
}

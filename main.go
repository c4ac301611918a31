package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"travelapp/internal/auth"
	"travelapp/internal/cache"
	intconfig "travelapp/internal/config"
	router "travelapp/internal/http"
	"travelapp/internal/http/handlers"
	"travelapp/internal/payments"
	"travelapp/internal/repositories"
	"travelapp/internal/services"
	"travelapp/internal/utils"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	utils.ConfigureLogger(env.GinMode)
	log := utils.Logger()

	if env.JWTSecretIsDev {
		if gin.Mode() == gin.ReleaseMode {
			log.Fatal("JWT_SECRET must be set in release mode")
		}
		log.Warn("JWT_SECRET not set, using an insecure development secret")
	}

	ctx := context.Background()
	store, err := intconfig.OpenStore(ctx, env)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer store.Close()
	log.WithField("driver", store.Dialect.Name()).Info("database connected")

	orders, err := cache.Connect(ctx, env.RedisURL, env.IdempotencyTTL)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, payment orders are not idempotent")
		orders = nil
	}
	defer orders.Close()

	inventory := services.InventoryService{
		Hotels:        repositories.NewHotelRepository(store),
		Buses:         repositories.NewBusRepository(store),
		Trains:        repositories.NewTrainRepository(store),
		FilterByDate:  env.FilterByDate,
		TrainDemoMode: env.TrainDemoMode,
	}
	hd := &handlers.Handler{
		Store: store,
		Auth: services.AuthService{
			Users:      repositories.NewUserRepository(store),
			Tokens:     auth.NewTokenManager(env.JWTSecret, env.TokenTTL),
			BcryptCost: env.BcryptCost,
		},
		Inventory: inventory,
		Bookings: services.BookingService{
			Bookings:  repositories.NewBookingRepository(store),
			Hotels:    inventory.Hotels,
			Buses:     inventory.Buses,
			Inventory: inventory,
		},
		Payments: services.PaymentService{
			Store:    store,
			Payments: repositories.NewPaymentRepository(store),
			Gateway:  payments.NewClient(env.RazorpayKeyID, env.RazorpaySecret, env.WebhookSecret, env.RazorpayBaseURL, env.GatewayTimeout),
			Orders:   orders,
		},
	}
	if env.RazorpayKeyID == "" || env.RazorpaySecret == "" {
		log.Warn("RAZORPAY_KEY_ID/RAZORPAY_KEY_SECRET not set, payment orders will fail")
	}

	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown failed")
		return
	}
	log.Info("server stopped")
}

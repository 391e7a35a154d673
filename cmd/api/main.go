package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/guzoride/guzo/internal/adapter/handler"
	"github.com/guzoride/guzo/internal/adapter/repository/postgres"
	"github.com/guzoride/guzo/internal/core/services"
	"github.com/guzoride/guzo/internal/platform/config"
	"github.com/guzoride/guzo/internal/platform/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	log.Printf("connecting to redis at %s...", cfg.RedisAddr)
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}
	log.Println("redis connected")

	tripRepo := postgres.NewTripRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	ruleRepo := postgres.NewPricingRuleRepository(db)
	surgeRepo := postgres.NewSurgeRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	vehicleRepo := postgres.NewVehicleRepository(db)

	inventory := services.NewInventoryService(tripRepo, rdb)
	pricing := services.NewPricingService(ruleRepo, surgeRepo, bookingRepo, services.DefaultPricingPolicy())
	bookings := services.NewBookingService(bookingRepo, tripRepo, inventory, pricing, cfg.PendingTTL)
	trips := services.NewTripService(tripRepo, bookingRepo)
	payments := services.NewPaymentService(paymentRepo, bookingRepo)
	vehicles := services.NewVehicleService(vehicleRepo)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go bookings.RunExpiryWorker(workerCtx)

	router := handler.NewRouter(
		handler.NewBookingHandler(bookings),
		handler.NewTripHandler(trips),
		handler.NewPricingHandler(pricing),
		handler.NewPaymentHandler(payments),
		handler.NewVehicleHandler(vehicles),
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("shutting down server...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exiting")
}

// File: futsal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"futsal/calendar"
	"futsal/config"
	"futsal/cron"
	"futsal/database"
	bookingRepoPkg "futsal/database/repository/booking"
	slotRepoPkg "futsal/database/repository/slot"
	subscriptionRepoPkg "futsal/database/repository/subscription"
	"futsal/handlers"
	"futsal/middleware"
	"futsal/routes"
	"futsal/services/access"
	"futsal/services/booking"
	"futsal/services/payment"
	"futsal/services/slot"
	"futsal/services/subscription"
	"futsal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	cal, err := calendar.New(config.AppConfig.BusinessTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	subscriptionRepo := subscriptionRepoPkg.NewMongoSubscriptionRepo()
	for _, ensure := range []func() error{
		slotRepo.EnsureIndexes,
		bookingRepo.EnsureIndexes,
		subscriptionRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// services.
	gateway := payment.NewWaafiGateway(logger)
	queue := cron.NewQueueClient()
	defer queue.Close()

	slotService := &slot.DefaultSlotService{
		Repo:     slotRepo,
		Bookings: bookingRepo,
		Cal:      cal,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:    bookingRepo,
		Slots:   slotRepo,
		Gateway: gateway,
		Cal:     cal,
	}
	subscriptionService := &subscription.DefaultSubscriptionService{
		Repo:     subscriptionRepo,
		Bookings: bookingRepo,
		Slots:    slotRepo,
		Gateway:  gateway,
		Cal:      cal,
		Queue:    queue,
	}
	accessService := &access.DefaultAccessService{
		Bookings: bookingRepo,
		Slots:    slotRepo,
		Cal:      cal,
	}

	// background workers.
	cron.InitMaterializeWorker(subscriptionService)
	sweeper := cron.StartExpirySweeper(subscriptionRepo, cal)
	defer sweeper.Stop()
	go utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	handlerBundle := &handlers.HandlerBundle{
		SlotSvc:         slotService,
		BookingSvc:      bookingService,
		SubscriptionSvc: subscriptionService,
		AccessSvc:       accessService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

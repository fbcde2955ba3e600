package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vendora/config"
	"vendora/database"
	bookingRepo "vendora/database/repository/booking"
	serviceRepo "vendora/database/repository/service"
	userRepo "vendora/database/repository/user"
	"vendora/handlers"
	"vendora/middleware"
	"vendora/routes"
	"vendora/services/booking"
	"vendora/services/payment"
	"vendora/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	bookings := bookingRepo.NewMongoBookingRequestRepo()
	users := userRepo.NewMongoUserRepo()
	services := serviceRepo.NewMongoServiceRepo()

	// The gateway is constructed once and injected; no package-level key.
	gateway := payment.NewStripeGateway(config.AppConfig.StripeSecretKey, logger)

	bookingService := &booking.DefaultBookingRequestService{
		Repo:        bookings,
		UserRepo:    users,
		ServiceRepo: services,
		Gateway:     gateway,
		Logger:      logger,
		Currency:    config.AppConfig.DefaultCurrency,
	}

	reconciler := &booking.WebhookReconciler{
		Repo:   bookings,
		Logger: logger,
		Cache:  utils.GetCacheClient(),
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	webhookHandler := handlers.NewWebhookHandler(reconciler, config.AppConfig.StripeWebhookSecret, logger)

	routes.RegisterBookingRoutes(router, bookingHandler)
	routes.RegisterWebhookRoutes(router, webhookHandler)
	routes.RegisterHealthRoutes(router)

	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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

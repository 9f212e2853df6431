package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lqphu369/vehicle-rental-service/internal/application"
	"github.com/lqphu369/vehicle-rental-service/internal/auth"
	"github.com/lqphu369/vehicle-rental-service/internal/config"
	"github.com/lqphu369/vehicle-rental-service/internal/database"
	rentalDomain "github.com/lqphu369/vehicle-rental-service/internal/domain/rental"
	"github.com/lqphu369/vehicle-rental-service/internal/domain/routing"
	"github.com/lqphu369/vehicle-rental-service/internal/events"
	"github.com/lqphu369/vehicle-rental-service/internal/geo"
	"github.com/lqphu369/vehicle-rental-service/internal/handler"
	"github.com/lqphu369/vehicle-rental-service/internal/logger"
	"github.com/lqphu369/vehicle-rental-service/internal/middleware"
	"github.com/lqphu369/vehicle-rental-service/internal/repository"
)

const serviceName = "vehicle-rental-service"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting "+serviceName,
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run schema migration
	if err := db.AutoMigrate(&repository.VehicleModel{}, &repository.RentalModel{}); err != nil {
		log.Fatal("failed to run auto-migration", zap.Error(err))
	}
	log.Info("database migration completed")

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 15*time.Minute)

	// Initialize Kafka producer
	kafkaProducer := events.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	vehicleRepo := repository.NewGormVehicleRepository(db)
	rentalRepo := repository.NewGormRentalRepository(db)

	// Initialize pricing strategy
	pricingStrategy := rentalDomain.NewStandardPricingStrategy()

	// Initialize geo providers
	var geocoder geo.Geocoder
	var router geo.RouteProvider
	switch cfg.GeoConfig.Provider {
	case "google":
		googleClient, err := geo.NewGoogleClient(cfg.GeoConfig.GoogleAPIKey)
		if err != nil {
			log.Fatal("failed to create Google Maps client", zap.Error(err))
		}
		geocoder, router = googleClient, googleClient
	default:
		geocoder = geo.NewNominatimClient(cfg.GeoConfig.NominatimBaseURL)
		router = geo.NewOSRMClient(cfg.GeoConfig.OSRMBaseURL)
	}

	// Initialize application services
	translator := routing.NewTranslator(cfg.MapConfig.FeePerKm)
	sessions := application.NewSessionManager()

	mapService := application.NewMapService(vehicleRepo, cfg.MapConfig, log)
	vehicleService := application.NewVehicleService(vehicleRepo, log)
	routeService := application.NewRouteService(geocoder, router, translator, sessions, log)
	rentalService := application.NewRentalService(
		rentalRepo,
		vehicleRepo,
		pricingStrategy,
		kafkaProducer,
		log,
	)

	// Initialize and start payment event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paymentConsumer := events.NewPaymentEventConsumer(
		cfg.KafkaBrokers,
		serviceName,
		rentalService,
		log,
	)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	mapHandler := handler.NewMapHandler(mapService, vehicleService)
	routeHandler := handler.NewRouteHandler(routeService)
	rentalHandler := handler.NewRentalHandler(rentalService)
	adminHandler := handler.NewAdminHandler(rentalService, vehicleService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	// Apply global middleware
	engine.Use(middleware.RecoveryMiddleware(log))
	engine.Use(middleware.LoggerMiddleware(log))
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := handler.NewHealthHandler(db, serviceName)
	healthHandler.RegisterRoutes(engine)

	// Register routes
	mapHandler.RegisterRoutes(&engine.RouterGroup)
	routeHandler.RegisterRoutes(&engine.RouterGroup)
	rentalHandler.RegisterRoutes(&engine.RouterGroup, jwtManager)
	adminHandler.RegisterRoutes(&engine.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down " + serviceName + "...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info(serviceName + " stopped")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JasaIn/service-booking/internal/application"
	"github.com/JasaIn/service-booking/internal/common/auth"
	"github.com/JasaIn/service-booking/internal/common/database"
	"github.com/JasaIn/service-booking/internal/common/health"
	"github.com/JasaIn/service-booking/internal/common/kafka"
	"github.com/JasaIn/service-booking/internal/common/logger"
	"github.com/JasaIn/service-booking/internal/common/middleware"
	"github.com/JasaIn/service-booking/internal/config"
	bookingEvents "github.com/JasaIn/service-booking/internal/events"
	"github.com/JasaIn/service-booking/internal/handler"
	"github.com/JasaIn/service-booking/internal/repository"
	"github.com/JasaIn/service-booking/internal/storage"
	"github.com/JasaIn/service-booking/migrations"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const serviceName = "jasain-service-booking"

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
		zap.String("env", cfg.AppEnv),
		zap.String("db_driver", cfg.DBConfig.Driver),
	)

	// Connect to database
	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Schema: AutoMigrate for SQLite and development, versioned SQL otherwise
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(repository.AllModels()...); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.DBConfig.DatabaseURL(), migrations.FS, migrations.Dir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := repository.NewGormStore(db)
	aggregator := application.NewRatingAggregator(log)

	if cfg.ReconcileOnStart {
		if err := aggregator.ReconcileAll(ctx, store); err != nil {
			log.Fatal("failed to reconcile service ratings", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWTConfig.Secret, cfg.JWTConfig.AccessTTL, cfg.JWTConfig.RefreshTTL)

	// Event publishing: Kafka when enabled, dropped otherwise
	var publisher application.EventPublisher = application.NoopPublisher{}
	if cfg.KafkaConfig.Enabled {
		kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaProducer.Close() }()
		publisher = bookingEvents.NewKafkaPublisher(kafkaProducer)
	} else {
		log.Warn("kafka disabled, domain events will not be published")
	}

	// Payment proof storage
	var proofStorage application.ObjectStorage = storage.Disabled{}
	if cfg.S3Config.Enabled {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3Config, log)
		if err != nil {
			log.Fatal("failed to initialize S3 storage", zap.Error(err))
		}
		proofStorage = s3Storage
	}

	// Initialize application services
	bookingService := application.NewBookingService(store, publisher, log)
	paymentService := application.NewPaymentService(store, publisher, log)
	reviewService := application.NewReviewService(store, aggregator, publisher, log)
	catalogService := application.NewCatalogService(store, log)
	userService := application.NewUserService(store, jwtManager, log)
	favoriteService := application.NewFavoriteService(store, log)
	chatService := application.NewChatService(store, log)
	notificationService := application.NewNotificationService(store, log)
	analyticsService := application.NewAnalyticsService(store, log)
	proofService := application.NewProofService(store, proofStorage, log)
	scheduleService := application.NewScheduleService(store, log)
	teamService := application.NewTeamService(store, log)
	promotionService := application.NewPromotionService(store, log)

	// Notification projector consumes our own event topics
	if cfg.KafkaConfig.Enabled {
		groupID := cfg.KafkaConfig.GroupPrefix + "notifications"
		notificationConsumer := bookingEvents.NewNotificationConsumer(cfg.KafkaConfig.Brokers, groupID, notificationService, log)
		defer func() { _ = notificationConsumer.Close() }()

		go func() {
			log.Info("starting notification consumer")
			if err := notificationConsumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("notification consumer error", zap.Error(err))
			}
		}()
	}

	// Setup Gin router
	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins...))
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	health.NewHandler(db, serviceName).RegisterRoutes(router)

	// Register routes
	api := &router.RouterGroup
	handler.NewUserHandler(userService).RegisterRoutes(api, jwtManager)
	handler.NewCatalogHandler(catalogService).RegisterRoutes(api, jwtManager)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api, jwtManager)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(api, jwtManager)
	handler.NewProofHandler(proofService).RegisterRoutes(api, jwtManager)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, jwtManager)
	handler.NewFavoriteHandler(favoriteService).RegisterRoutes(api, jwtManager)
	handler.NewChatHandler(chatService).RegisterRoutes(api, jwtManager)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(api, jwtManager)
	handler.NewAnalyticsHandler(analyticsService).RegisterRoutes(api, jwtManager)
	handler.NewScheduleHandler(scheduleService).RegisterRoutes(api, jwtManager)
	handler.NewTeamHandler(teamService).RegisterRoutes(api, jwtManager)
	handler.NewPromotionHandler(promotionService).RegisterRoutes(api, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

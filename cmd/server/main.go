package main

// @title           CampusConnect API
// @version         1.0
// @description     Mentorship requests, chat and notifications between juniors and senior students or alumni.
// @host            localhost:5000
// @BasePath        /api
// @schemes         http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "campus-connect/docs"
	"campus-connect/internal/adapters/kafka"
	"campus-connect/internal/adapters/storage"
	"campus-connect/internal/api/middleware"
	"campus-connect/internal/api/routes"
	"campus-connect/internal/config"
	"campus-connect/internal/database"
	"campus-connect/internal/events"
	"campus-connect/internal/repositories"
	"campus-connect/internal/repositories/mongodb"
	"campus-connect/internal/repositories/postgres"
	"campus-connect/internal/security"
	"campus-connect/internal/services"
	"campus-connect/internal/websocket"
	"campus-connect/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.New(cfg.App.LogLevel, cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting CampusConnect server", "env", cfg.App.Env)

	ctx := context.Background()
	healthChecks := make(map[string]routes.HealthCheck)

	// Relational database
	db, err := database.NewConnection(cfg.Database, cfg.IsDevelopment(), appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		appLogger.Fatal("Failed to migrate database", err)
	}
	healthChecks["database"] = func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}

	// Redis is optional: without it presence, rate limits and fan-out stay
	// in process.
	var redisService *services.RedisService
	if cfg.Redis.URI != "" {
		redisClient, err := database.NewRedisConnection(cfg.Redis, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
		redisService = services.NewRedisService(redisClient, appLogger)
		healthChecks["redis"] = redisClient.Ping
	} else {
		appLogger.Warn("REDIS_URL not set, running single instance")
	}

	// Message store
	var messageStore repositories.MessageStore = postgres.NewMessageRepository(db)
	if cfg.MessageStore == config.MessageStoreMongo {
		mongoDB, err := database.NewMongoConnection(ctx, cfg.Mongo, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to MongoDB", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongoDB.Close(closeCtx)
		}()
		mongoMessages := mongodb.NewMessageRepository(mongoDB)
		if err := mongoMessages.EnsureIndexes(ctx); err != nil {
			appLogger.Fatal("Failed to create message indexes", err)
		}
		messageStore = mongoMessages
		healthChecks["mongo"] = func(ctx context.Context) error {
			return mongoDB.Client.Ping(ctx, nil)
		}
	}

	// Avatar storage
	var avatars storage.AvatarStore
	uploadDir := ""
	switch cfg.Storage.Driver {
	case config.StorageMinIO:
		avatars, err = storage.NewMinIOStore(ctx, cfg.Storage)
		if err != nil {
			appLogger.Fatal("Failed to initialize MinIO storage", err)
		}
	default:
		local, err := storage.NewLocalStore(cfg.Storage.UploadDir)
		if err != nil {
			appLogger.Fatal("Failed to initialize upload directory", err)
		}
		avatars = local
		uploadDir = local.Dir()
	}

	// Domain events
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.InitKafkaProducer(cfg.Kafka.Brokers)
		if err != nil {
			appLogger.Fatal("Failed to initialize Kafka producer", err)
		}
		publisher = kafka.NewProducer(producer, cfg.Kafka.Topic)
		appLogger.Info("Publishing domain events", "topic", cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// WebSocket hub
	hub := websocket.NewHub(redisService, appLogger)
	go hub.Run()

	// Services
	tokens := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpirationTime)
	notificationService := services.NewNotificationService(notificationRepo, hub, appLogger)
	chatService := services.NewChatService(chatRepo, messageStore, userRepo, requestRepo, notificationService, hub, publisher, appLogger)

	var limiter middleware.Limiter
	if redisService != nil {
		limiter = middleware.NewRedisLimiter(redisService)
	}

	router := routes.NewRouter(routes.Dependencies{
		Auth:           services.NewAuthService(userRepo, tokens, publisher, appLogger),
		Users:          services.NewUserService(userRepo, avatars, cfg.Storage.MaxAvatarBytes, appLogger),
		Requests:       services.NewRequestService(requestRepo, userRepo, notificationService, publisher, appLogger),
		Chats:          chatService,
		Notifications:  notificationService,
		Admin:          services.NewAdminService(userRepo, requestRepo, chatRepo, messageStore, redisService, appLogger),
		Tokens:         tokens,
		Limiter:        limiter,
		Socket:         websocket.NewServer(hub, chatService, cfg.Server.AllowedOrigins, appLogger),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		PublicBaseURL:  cfg.Server.PublicBaseURL,
		UploadDir:      uploadDir,
		HealthChecks:   healthChecks,
		Debug:          cfg.IsDevelopment(),
	}, appLogger)
	router.SetupRoutes()

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hub.Stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server stopped")
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/config"
	deliveryHttp "github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/handler"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/http/middleware"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/broker"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/cache"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/database"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/repository"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/service"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/usecase"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/jwt"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/storage"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Publisher   service.EventPublisher
	Server      *http.Server
}

// Load reads the configuration and prepares the shared logger.
func Load() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	return cfg, log, nil
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	cfg, log, err := Load()
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Log: log}

	config.WatchLogLevel(log)

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.Publisher = newPublisher(cfg.AMQP, log)

	app.Server = initializeServer(cfg, log, db, redisClient, app.Publisher)

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Invalid LOG_LEVEL %q, using info", level)
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

// newPublisher connects to RabbitMQ when AMQP_URL is set. Without a broker
// entity events are dropped and audit rows are still written.
func newPublisher(cfg config.AMQPConfig, log *logrus.Logger) service.EventPublisher {
	if cfg.URL == "" {
		log.Info("AMQP_URL not set, entity events are not published")
		return broker.NopPublisher{}
	}

	publisher, err := broker.NewRabbitPublisher(cfg)
	if err != nil {
		log.Warnf("Failed to connect to RabbitMQ, entity events are not published: %v", err)
		return broker.NopPublisher{}
	}
	return publisher
}

// NewUserUsecase wires the user usecase alone, for CLI commands that do not
// serve HTTP. Redis is only dialed if a command revokes tokens.
func NewUserUsecase(cfg *config.Config, log *logrus.Logger, db *gorm.DB) usecase.UserUsecase {
	auditService := service.NewAuditService(log, repository.NewAuditLogRepository(), broker.NopPublisher{})
	tokenStore := service.NewRedisTokenStore(redis.NewClient(cache.RedisOptions(cfg.Redis)))

	return usecase.NewUserUsecase(
		db,
		log,
		validator.NewValidator(),
		storage.NewOsStore(cfg.Storage.Root),
		repository.NewUserRepository(),
		repository.NewHealthAgencyRepository(),
		auditService,
		tokenStore,
	)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client, publisher service.EventPublisher) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	fileStore := storage.NewOsStore(cfg.Storage.Root)
	tokenStore := service.NewRedisTokenStore(redisClient)

	var responseCache cache.ResponseCache = cache.NopResponseCache{}
	if cfg.Cache.Enabled {
		responseCache = cache.NewRedisResponseCache(redisClient)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	healthAgencyRepo := repository.NewHealthAgencyRepository()
	polyclinicRepo := repository.NewPolyclinicRepository()
	polyMasterRepo := repository.NewPolyMasterRepository()
	waitingListRepo := repository.NewWaitingListRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo, publisher)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, customValidator, userRepo, jwtService, tokenStore, auditService)
	healthAgencyUsecase := usecase.NewHealthAgencyUsecase(db, log, customValidator, fileStore, healthAgencyRepo, polyclinicRepo, auditService)
	polyMasterUsecase := usecase.NewPolyMasterUsecase(db, log, customValidator, polyMasterRepo, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, customValidator, fileStore, userRepo, healthAgencyRepo, auditService, tokenStore)
	waitingListUsecase := usecase.NewWaitingListUsecase(db, log, waitingListRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlerSet := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase),
		HealthAgency: handler.NewHealthAgencyHandler(healthAgencyUsecase),
		PolyMaster:   handler.NewPolyMasterHandler(polyMasterUsecase),
		User:         handler.NewUserHandler(userUsecase),
		WaitingList:  handler.NewWaitingListHandler(waitingListUsecase),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
		Storage:      handler.NewStorageHandler(fileStore.Fs(), cfg.Storage.PublicPrefix),
		Health: handler.NewHealthHandler(
			handler.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}},
			handler.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}},
		),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	cacheMiddleware := middleware.NewCacheMiddleware(responseCache, cfg.Cache.TTL, log)

	router := deliveryHttp.NewRouter(handlerSet, authMiddleware, corsMiddleware, cacheMiddleware, cfg.Storage.PublicPrefix)

	httpHandler := handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(cfg.App.Env == "development"),
	)(router.Setup())
	httpHandler = handlers.CombinedLoggingHandler(log.Writer(), httpHandler)

	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, broker)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	if publisher, ok := app.Publisher.(*broker.RabbitPublisher); ok {
		if err := publisher.Close(); err != nil {
			app.Log.Warnf("Failed to close RabbitMQ connection: %v", err)
		}
	}
}

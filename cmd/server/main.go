package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	appdocument "github.com/salonops/backend/internal/application/document"
	appinventory "github.com/salonops/backend/internal/application/inventory"
	"github.com/salonops/backend/internal/infrastructure/auth"
	"github.com/salonops/backend/internal/infrastructure/config"
	"github.com/salonops/backend/internal/infrastructure/logger"
	"github.com/salonops/backend/internal/infrastructure/persistence"
	"github.com/salonops/backend/internal/infrastructure/sequence"
	"github.com/salonops/backend/internal/interfaces/http/handler"
	"github.com/salonops/backend/internal/interfaces/http/middleware"
	"github.com/salonops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	maxRequestBodyBytes = 1 << 20 // 1 MiB
	shutdownTimeout     = 10 * time.Second
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting SalonOps Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// The transaction scope is the single entry point for repository
	// access; every service mutation runs inside one of its transactions.
	scope := persistence.NewGormTransactionScope(db.DB)

	// Document code generation. Redis keeps codes unique across instances;
	// when it is unreachable we fall back to in-process counters so a dev
	// setup without Redis still works.
	var codes appdocument.CodeGenerator
	redisCodes, err := sequence.NewRedisCodeGenerator(sequence.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-process document sequences", zap.Error(err))
		codes = sequence.NewInMemoryCodeGenerator()
	} else {
		defer func() {
			if err := redisCodes.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		codes = redisCodes
		log.Info("Redis connected successfully")
	}

	// Application services
	orderService := appdocument.NewOrderService(scope, codes)
	purchaseService := appdocument.NewPurchaseService(scope, codes)
	consignmentService := appdocument.NewConsignmentService(scope, codes)
	paymentService := appdocument.NewPaymentService(scope)
	movementService := appinventory.NewMovementService(scope)

	// Actor identity
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP handlers
	handlers := router.Handlers{
		System:      handler.NewSystemHandler(),
		Order:       handler.NewOrderHandler(orderService, movementService),
		Purchase:    handler.NewPurchaseHandler(purchaseService, movementService),
		Consignment: handler.NewConsignmentHandler(consignmentService, movementService),
		Transaction: handler.NewTransactionHandler(paymentService),
		Inventory:   handler.NewInventoryHandler(movementService),
	}

	// Gin engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(maxRequestBodyBytes),
		// Authentication is optional: anonymous writes are recorded with
		// system attribution, authenticated ones carry the actor's ID.
		middleware.OptionalJWTAuth(jwtService),
	)

	// Routes
	r := router.NewRouter(engine)
	router.RegisterAll(r, handlers)
	r.Setup()

	// HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatal("HTTP server failed", zap.Error(err))
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("Server stopped cleanly")
	}
}

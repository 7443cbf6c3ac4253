// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/japolo/catalog-api/internal/adapters/db"
	"github.com/japolo/catalog-api/internal/core/ports"
	"github.com/japolo/catalog-api/internal/handlers"
	"github.com/japolo/catalog-api/internal/handlers/middleware"
	"github.com/japolo/catalog-api/internal/pkg/config"
	"github.com/japolo/catalog-api/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting catalog api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.ServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database       ports.Database
	executor       ports.Executor
	userRepo       ports.UserRepository
	productRepo    ports.ProductRepository
	userHandler    *handlers.UserHandler
	productHandler *handlers.ProductHandler
	healthHandler  *handlers.HealthHandler
	apiHandler     *handlers.APIHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, slogger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	slogger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		AcquireTimeout:     cfg.Database.AcquireTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, slogger)
	if err != nil {
		return nil, err
	}
	deps.database = database

	executor := db.NewExecutor(database, slogger)
	deps.executor = executor

	deps.userRepo = db.NewUserRepository(executor, slogger)
	deps.productRepo = db.NewProductRepository(executor, slogger)

	deps.userHandler = handlers.NewUserHandler(deps.userRepo, slogger)
	deps.productHandler = handlers.NewProductHandler(deps.productRepo, slogger)
	deps.healthHandler = handlers.NewHealthHandler(database, cfg, slogger)
	deps.apiHandler = handlers.NewAPIHandler(cfg)

	slogger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps, cfg)

	// Apply middleware in reverse order (innermost first). RequestID wraps
	// outside Logger and Recovery so their log records carry the request ID.
	var handler http.Handler = mux
	handler = middleware.Recovery(slogger)(handler)
	handler = middleware.Logger(slogger)(handler)
	handler = middleware.RequestID(cfg.Security.RequestIDHeader)(handler)

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.ServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	mux.HandleFunc("GET /{$}", deps.apiHandler.Info)

	if cfg.Server.EnableHealthCheck {
		mux.HandleFunc("GET /health", deps.healthHandler.Health)
		mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)
	}

	// User endpoints
	mux.HandleFunc("GET /api/users", deps.userHandler.List)
	mux.HandleFunc("GET /api/users/{id}", deps.userHandler.Get)
	mux.HandleFunc("POST /api/users", deps.userHandler.Create)
	mux.HandleFunc("PUT /api/users/{id}", deps.userHandler.Update)
	mux.HandleFunc("DELETE /api/users/{id}", deps.userHandler.Delete)

	// Product endpoints
	mux.HandleFunc("GET /api/products", deps.productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", deps.productHandler.Get)
	mux.HandleFunc("POST /api/products", deps.productHandler.Create)
	mux.HandleFunc("PUT /api/products/{id}", deps.productHandler.Update)
	mux.HandleFunc("DELETE /api/products/{id}", deps.productHandler.Delete)
}

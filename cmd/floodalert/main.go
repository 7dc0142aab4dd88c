package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/rajasatyajit/FloodAlert/config"
	"github.com/rajasatyajit/FloodAlert/internal/api"
	"github.com/rajasatyajit/FloodAlert/internal/auth"
	"github.com/rajasatyajit/FloodAlert/internal/cities"
	"github.com/rajasatyajit/FloodAlert/internal/composer"
	"github.com/rajasatyajit/FloodAlert/internal/database"
	"github.com/rajasatyajit/FloodAlert/internal/events"
	"github.com/rajasatyajit/FloodAlert/internal/logger"
	"github.com/rajasatyajit/FloodAlert/internal/metrics"
	middlewares "github.com/rajasatyajit/FloodAlert/internal/middleware"
	"github.com/rajasatyajit/FloodAlert/internal/notify"
	"github.com/rajasatyajit/FloodAlert/internal/pipeline"
	"github.com/rajasatyajit/FloodAlert/internal/ratelimit"
	"github.com/rajasatyajit/FloodAlert/internal/risk"
	"github.com/rajasatyajit/FloodAlert/internal/safeplaces"
	"github.com/rajasatyajit/FloodAlert/internal/store"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// floodalert hash-secret <secret> prints a value for ADMIN_SECRET_HASH
	if len(os.Args) == 3 && os.Args[1] == "hash-secret" {
		hash, err := auth.HashSecret(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash secret: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Starting FloodAlert application",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
		"env", cfg.Env,
	)

	// Reference tables are compiled in; refuse to start on a broken one
	for name, validate := range map[string]func() error{
		"cities":      cities.Validate,
		"risk":        risk.Validate,
		"safe places": safeplaces.Validate,
	} {
		if err := validate(); err != nil {
			logger.Fatal("Reference data invalid", "table", name, "error", err)
		}
	}

	// Initialize metrics
	if cfg.Metrics.Enabled {
		metrics.Init()
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database
	db, err := database.New(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", "error", err)
	}
	defer db.Close()

	if db.IsConfigured() && cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", "error", err)
		}
	}

	clock := clockwork.NewRealClock()
	users := store.New(db, clock)

	limiter, err := ratelimit.New(cfg.Redis, clock)
	if err != nil {
		logger.Fatal("Failed to initialize rate limiter", "error", err)
	}
	defer limiter.Close()

	publisher := events.New(cfg.Kafka)
	defer publisher.Close()

	dispatcher, err := notify.New(cfg.Notify, cfg.IsDev())
	if err != nil {
		logger.Fatal("Failed to initialize notifications", "error", err)
	}

	table, err := risk.ByName(cfg.Alerts.RiskTable)
	if err != nil {
		logger.Fatal("Unknown risk table", "error", err)
	}
	resolver := risk.NewResolver(table)
	ranker := safeplaces.Default()
	comp := composer.New(resolver, ranker, composer.Options{
		TopN:   cfg.Alerts.TopN,
		AppURL: cfg.Alerts.AppURL,
		Clock:  clock,
	})

	alertPipeline := pipeline.New(users, dispatcher, comp, publisher, cfg.Pipeline, clock)

	apiHandler := api.NewHandler(api.Deps{
		Users:     users,
		Pipeline:  alertPipeline,
		Resolver:  resolver,
		Ranker:    ranker,
		Limiter:   limiter,
		Issuer:    auth.NewIssuer(cfg.Auth, clock),
		Admin:     auth.NewAdminVerifier(cfg.Admin),
		Alerts:    cfg.Alerts,
		Clock:     clock,
		Version:   Version,
		BuildTime: BuildTime,
		GitCommit: GitCommit,
	})

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.Metrics.Port, cfg.Metrics.Path)
	}

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(cfg, apiHandler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown lets in-flight fan-outs finish
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}

// newRouter wires the global middleware stack around the API routes.
func newRouter(cfg *config.Config, h *api.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.Logging)
	r.Use(middlewares.Metrics)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.WriteTimeout))
	r.Use(middlewares.Security)
	r.Use(middlewares.CORS(cfg.CORS.AllowedOrigins))

	h.RegisterRoutes(r)
	return r
}

func startMetricsServer(port int, path string) {
	mux := http.NewServeMux()
	mux.Handle(path, metrics.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info("Starting metrics server", "address", addr, "path", path)

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics server failed", "error", err)
	}
}

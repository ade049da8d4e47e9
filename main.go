package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/FACorreiaa/go-route-recommendations/app/db"
	appLogger "github.com/FACorreiaa/go-route-recommendations/app/logger"
	"github.com/FACorreiaa/go-route-recommendations/app/observability/metrics"
	"github.com/FACorreiaa/go-route-recommendations/app/tracer"
	"github.com/FACorreiaa/go-route-recommendations/config"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/maps"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/planner"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/preferences"
	"github.com/FACorreiaa/go-route-recommendations/internal/api/suggestions"
	api "github.com/FACorreiaa/go-route-recommendations/internal/router"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	// --- Logger Setup ---
	logger := setupLogger()
	slog.SetDefault(logger)

	// --- Application Context & Shutdown ---
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Observability ---
	tracer.InitTracingAndMetrics(cfg.Handlers.Prometheus.Port)
	metrics.InitAppMetrics()
	appMetrics := metrics.Get()

	// --- Database Setup ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}

	// Run migrations *before* initializing the main pool
	err = database.RunMigrations(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Dependency Injection ---
	prefsRepo := preferences.NewPostgresRepository(pool, logger)
	prefsService := preferences.NewServiceImpl(prefsRepo, logger)
	prefsHandler := preferences.NewHandler(prefsService, logger)

	mapsClient := maps.NewGoogleClient(maps.Options{
		BaseURL:        cfg.Providers.Maps.BaseURL,
		APIKey:         os.Getenv("GOOGLE_MAPS_API_KEY"),
		Timeout:        cfg.Providers.Maps.Timeout,
		RequestsPerSec: cfg.Providers.Maps.RequestsPerSec,
		Burst:          cfg.Providers.Maps.Burst,
	}, logger, appMetrics)
	mapsHandler := maps.NewHandler(mapsClient, logger)

	aiClient, err := suggestions.NewGeminiClient(ctx, cfg.Providers.Gemini.Model)
	if err != nil {
		logger.Error("Failed to initialize suggestion model client", slog.Any("error", err))
		os.Exit(1)
	}
	suggestionService := suggestions.NewServiceImpl(aiClient, float32(cfg.Providers.Gemini.Temperature), logger, appMetrics)

	plannerService := planner.NewServiceImpl(mapsClient, prefsService, suggestionService, planner.Options{
		SearchRadiusM: cfg.Providers.Maps.SearchRadiusM,
		SamplePoints:  cfg.Providers.Maps.SamplePoints,
	}, logger, appMetrics)
	plannerHandler := planner.NewHandler(plannerService, logger)

	// --- Router Setup ---
	routerConfig := &api.Config{
		PlannerHandler:     plannerHandler,
		PreferencesHandler: prefsHandler,
		MapsHandler:        mapsHandler,
	}
	mainRouter := api.SetupRouter(routerConfig)

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	// --- HTTP Server Setup ---
	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	// --- Start Server Goroutine ---
	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	// --- Wait for Shutdown Signal ---
	<-ctx.Done()

	// --- Graceful Shutdown ---
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}

	logger.Info("Application shut down complete.")
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" { // Default to development if not set
		// Colored logs for development
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		// JSON logs for production or other environments
		jsonOpts := &slog.HandlerOptions{
			Level:     slog.LevelInfo,
			AddSource: false,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"esgpulse/internal/config"
	"esgpulse/internal/dataset"
	apierrors "esgpulse/internal/errors"
	"esgpulse/internal/infrastructure"
	custommw "esgpulse/internal/middleware"
	"esgpulse/internal/services"
	handlers "esgpulse/internal/transport/http"
	ws "esgpulse/internal/websocket"
)

const (
	AppName = "ESG Pulse"
	Version = "v1.0.0"
)

// Application is the dependency container: configuration, infrastructure,
// the dataset store, the service layer, and the HTTP server.
type Application struct {
	Config *config.Config
	Logger *slog.Logger
	Router *chi.Mux
	Server *http.Server

	Store     *dataset.Store
	Loader    *dataset.Loader
	Hub       *ws.Hub
	Dashboard *services.DashboardService
	Health    *services.HealthService

	Metrics          *infrastructure.MetricsProviders
	DashboardMetrics *infrastructure.DashboardMetrics
	ErrorHandler     *apierrors.ErrorHandler
}

// NewApplication wires the application together. Datasets are loaded from
// the configured data directory; a missing benchmark file is tolerated.
func NewApplication(ctx context.Context) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.InfoContext(ctx, "application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.Int("port", cfg.Server.Port))

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	metricsProviders, err := infrastructure.InitializeMetrics(logger)
	if err != nil {
		return nil, fmt.Errorf("initialize metrics: %w", err)
	}
	dashboardMetrics, err := infrastructure.NewDashboardMetrics(metricsProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("create dashboard metrics: %w", err)
	}

	store := dataset.NewStore()
	loader := dataset.NewLoader(logger)
	if err := loader.LoadAll(ctx, store,
		cfg.ObservationsPath(), cfg.MetricsPath(), cfg.BenchmarkPath()); err != nil {
		// Startup without data files is allowed; uploads can seed the
		// store later. Readiness stays red until then.
		logger.WarnContext(ctx, "startup dataset load failed, serving empty snapshot",
			slog.String("error", err.Error()))
	}

	hub := ws.NewHub(logger)

	app := &Application{
		Config:           cfg,
		Logger:           logger,
		Store:            store,
		Loader:           loader,
		Hub:              hub,
		Dashboard:        services.NewDashboardService(store, logger, dashboardMetrics, hub, cfg.Dashboard.EfficiencyLimit),
		Health:           services.NewHealthService(store, logger, Version),
		Metrics:          metricsProviders,
		DashboardMetrics: dashboardMetrics,
		ErrorHandler:     apierrors.NewErrorHandler(logger, false),
	}

	app.Router = app.setupRouter()
	app.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        app.Router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return app, nil
}

// setupRouter builds the middleware chain and mounts all handlers.
func (app *Application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(custommw.RealIP)
	r.Use(custommw.StructuredLogger(app.Logger))
	r.Use(custommw.Metrics(app.DashboardMetrics))
	r.Use(custommw.Recoverer(app.Logger))

	if app.Config.Security.RateLimit.Enabled {
		limiter := custommw.NewRateLimiter(
			app.Config.Security.RateLimit.RPS,
			app.Config.Security.RateLimit.Burst,
			app.Logger)
		r.Use(limiter.Handler)
	}

	if app.Config.Security.EnableCORS {
		r.Use(custommw.CORS(custommw.CORSConfig{
			AllowedOrigins: app.Config.Security.AllowedOrigins,
		}))
	}

	r.Use(custommw.SecurityHeaders)
	r.Use(custommw.Compress(5))

	dashboardHandler := handlers.NewDashboardHandler(app.Dashboard, app.Logger, app.ErrorHandler)
	datasetHandler := handlers.NewDatasetHandler(app.Dashboard, app.Logger, app.ErrorHandler, app.Config.Dashboard.MaxUploadBytes)
	exportHandler := handlers.NewExportHandler(app.Dashboard, app.Logger, app.ErrorHandler, app.DashboardMetrics)
	healthHandler := handlers.NewHealthHandler(app.Health, app.Logger)
	wsHandler := handlers.NewWebSocketHandler(app.Hub, app.Config.WebSocket,
		app.Config.Security.AllowedOrigins, app.Logger, app.ErrorHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Mount("/datasets", datasetHandler.Routes())
		r.Mount("/export", exportHandler.Routes())
	})

	r.Mount("/", healthHandler.Routes())
	r.Handle("/metrics", app.Metrics.PrometheusHTTP)
	r.Handle("/ws", wsHandler)

	return r
}

// Run starts the hub and HTTP server and blocks until the context is
// cancelled or an interrupt arrives, then shuts down gracefully.
func (app *Application) Run(ctx context.Context) error {
	app.Hub.Start()

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("http server listening", slog.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-stop:
		app.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
		app.Logger.Info("context cancelled, shutting down")
	}

	return app.Shutdown()
}

// Shutdown drains in-flight requests and releases resources.
func (app *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := app.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("server shutdown: %w", err)
	}

	app.Hub.Stop()

	if err := app.Metrics.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := infrastructure.CloseLogFile(); err != nil && firstErr == nil {
		firstErr = err
	}

	app.Logger.Info("shutdown complete")
	return firstErr
}

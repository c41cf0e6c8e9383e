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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"sentipulse/internal/config"
	"sentipulse/internal/dataprocessing"
	"sentipulse/internal/errors"
	"sentipulse/internal/infrastructure"
	custommiddleware "sentipulse/internal/middleware"
	"sentipulse/internal/services"
	handlers "sentipulse/internal/transport/http"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Dashboard     *services.DashboardService
	Health        *services.HealthService
}

// NewApplication creates a new application instance with dependency injection
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices wires the pipeline and the application services
func (a *Application) initializeServices() error {
	pipeline, err := dataprocessing.NewPipeline(a.Config.Data, a.Logger)
	if err != nil {
		return err
	}

	dashboard, err := services.NewDashboardService(pipeline, a.Logger, a.OTelProviders.Meter)
	if err != nil {
		return err
	}
	a.Dashboard = dashboard

	a.Health = services.NewHealthService(config.AppVersion, "", a.Config.Data, a.Logger)

	return nil
}

// setupRouter configures the chi router with middleware and routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommiddleware.StructuredLogger(a.Logger))
	r.Use(custommiddleware.Recoverer(a.Logger))
	r.Use(chimiddleware.Compress(5))

	if a.Config.Security.RateLimit.Enabled {
		limiter := custommiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger)
		r.Use(limiter.Handler)
	}

	errorHandler := errors.NewErrorHandler(a.Logger)
	dashboardHandler := handlers.NewDashboardHandler(a.Dashboard, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.Health, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/dashboard", dashboardHandler.Routes())
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/version", healthHandler.Version)
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// createServer builds the HTTP server from configuration
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         a.Config.GetListenAddr(),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until shutdown
func (a *Application) Run() error {
	// Warm the dataset cache before accepting traffic. A failure here is
	// logged but not fatal: the load is retried on first request, and the
	// operator may fix the inputs without restarting.
	if _, err := a.Dashboard.Dataset(context.Background()); err != nil {
		a.Logger.Warn("initial dataset load failed",
			slog.String("error", err.Error()))
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("HTTP server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		a.Logger.Info("shutdown signal received",
			slog.String("signal", sig.String()))
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the server and flushes telemetry
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("server shutdown failed",
			slog.String("error", err.Error()))
		return err
	}

	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		a.Logger.Warn("telemetry shutdown failed",
			slog.String("error", err.Error()))
	}

	infrastructure.CloseLogFile()
	a.Logger.Info("shutdown complete")
	return nil
}

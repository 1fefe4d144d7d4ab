package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/osrs-price-tracker/internal/api/handlers"
	"github.com/donaldgifford/osrs-price-tracker/internal/api/middleware"
	"github.com/donaldgifford/osrs-price-tracker/internal/config"
	"github.com/donaldgifford/osrs-price-tracker/internal/telemetry"
	"github.com/donaldgifford/osrs-price-tracker/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		ServiceName:    cfg.Telemetry.ServiceName,
		Version:        Version,
		MetricInterval: cfg.Telemetry.MetricInterval,
	})
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close(log)

	if err := a.store.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	a.scheduler.RecoverStaleJobRuns(ctx)
	a.scheduler.Start()
	if cfg.Schedule.RunOnStartup {
		go a.scheduler.RunStartup(ctx)
	}

	e := newServer(a, log)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           e,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}
	log.Info("starting server", "addr", addr, "version", Version)

	go func() {
		if err := e.StartServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutting down server", "error", err)
	}

	select {
	case <-a.scheduler.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler did not stop before timeout")
	}

	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Warn("flushing telemetry", "error", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer builds the Echo instance with probes, metrics and the JSON API.
func newServer(a *app, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(
		middleware.RequestLog(log),
		middleware.Recovery(log),
		middleware.Tracing(),
		middleware.Metrics(),
	)

	health := handlers.NewHealthHandler(a.store, Version)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("OSRS Price Tracker API", Version))
	handlers.RegisterItemRoutes(api, handlers.NewItemsHandler(a.store))
	handlers.RegisterOptimalRoutes(api, handlers.NewOptimalHandler(a.store))
	handlers.RegisterConsumableRoutes(api, handlers.NewConsumablesHandler(a.store))
	handlers.RegisterSyncRoutes(api, handlers.NewSyncHandler(a.scheduler))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(a.store))

	return e
}

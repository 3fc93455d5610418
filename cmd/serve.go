package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jjenkins/hansard/internal/handlers"
	"github.com/jjenkins/hansard/internal/metrics"
	"github.com/jjenkins/hansard/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Hansard web server",
	Long: `Start the web server that renders parliamentary records as HTML pages
and serves the same data as JSON under /api. Prometheus metrics are exposed
on /metrics.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// PORT env var applies unless the flag was set
	if !cmd.Flags().Changed("port") {
		port = cfg.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	queryMetrics, err := metrics.NewQueryMetrics(registry)
	if err != nil {
		return err
	}
	db.SetObserver(queryMetrics)
	if err := metrics.RegisterPool(registry, db.Stats); err != nil {
		return err
	}
	httpMetrics, err := metrics.NewHTTPMetrics(registry)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName:               "Hansard",
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} ${latency}\n",
	}))
	app.Use(httpMetrics.Middleware())
	app.Use(handlers.RequestContext(cfg.RequestTimeout))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	handlers.New(db, logger, cfg.DefaultPageSize).Register(app)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("port", port), zap.String("driver", cfg.Driver))
		errCh <- app.Listen(":" + port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("received interrupt signal, shutting down")
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("listener returned after shutdown", zap.Error(err))
	}
	return nil
}

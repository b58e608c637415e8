package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"ott-manager.app/api/handlers"
	"ott-manager.app/api/internal/config"
	"ott-manager.app/api/internal/logger"
	"ott-manager.app/api/internal/metrics"
	"ott-manager.app/api/internal/ratelimit"
	"ott-manager.app/api/internal/version"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the catalog and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Release:          version.Version,
			TracesSampleRate: 1.0,
		}); err != nil {
			return fmt.Errorf("sentry.Init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	cat, err := loadCatalog(ctx, cfg)
	if err != nil {
		return err
	}

	collector := metrics.New()
	collector.ObserveCatalog(cat.Records())

	opts := handlers.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            collector,
		Sentry:             cfg.SentryDSN != "",
	}
	if cfg.RateLimitRequests > 0 {
		opts.RateLimiter = ratelimit.New(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	server := handlers.NewHttpServer(cat, opts)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("OTT manager API starting", map[string]interface{}{
			"version":        version.String(),
			"port":           cfg.Port,
			"catalog_source": cfg.CatalogSource,
			"records":        cat.Len(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

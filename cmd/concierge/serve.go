package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/concierge/internal/cli"
	httpAdapter "github.com/aretw0/concierge/pkg/adapters/http"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and WebSocket server",
	Long: `Serves POST /chat, GET /ws (WebSocket), GET /events (SSE), session management,
the hotel catalog and Prometheus metrics on GET /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		rt, err := cli.NewRuntime(cfg, logger)
		if err != nil {
			return err
		}
		defer rt.Close()

		handler := httpAdapter.NewHandler(rt.Engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(rt.Metrics.Handler()),
			httpAdapter.WithJWTSecret(cfg.Auth.JWTSecret),
			httpAdapter.WithRateLimit(cfg.HTTP.RateLimit, cfg.HTTP.Burst),
			httpAdapter.WithAllowedOrigins(cfg.HTTP.AllowedOrigins),
		)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("Starting Concierge server", "addr", srv.Addr, "store", cfg.Store.Backend, "auth", cfg.Auth.JWTSecret != "")
			serverErrors <- srv.ListenAndServe()
		}()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case <-ctx.Done():
			logger.Info("Start shutdown", "signal", ctx.Signal())

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("error killing server: %w", err)
				}
			}
			logger.Info("Concierge server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().Float64("rate-limit", 5, "Messages per second allowed per user (0 disables)")
	if err := v.BindPFlag("http.port", serveCmd.Flags().Lookup("port")); err != nil {
		panic(err)
	}
	if err := v.BindPFlag("http.rate_limit", serveCmd.Flags().Lookup("rate-limit")); err != nil {
		panic(err)
	}
}

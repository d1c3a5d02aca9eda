package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/sail"
	httpAdapter "github.com/aretw0/sail/pkg/adapters/http"
	"github.com/aretw0/sail/pkg/adapters/memory"
	"github.com/aretw0/sail/pkg/adapters/redis"
	"github.com/aretw0/sail/pkg/config"
	"github.com/aretw0/sail/pkg/observability"
	"github.com/aretw0/sail/pkg/ports"
	"github.com/aretw0/sail/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// NewHandler wires the session manager, library, metrics and HTTP adapter
// described by cfg.
func NewHandler(cfg config.Config, logger *slog.Logger) (http.Handler, error) {
	lib, err := OpenLibrary(cfg.Playground.ExamplesDir)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
	pgOpts := []sail.Option{
		sail.WithLogger(logger),
		sail.WithLifecycleHooks(hooks),
		sail.WithDumpMode(cfg.DumpMode()),
	}

	managerOpts := []session.Option{
		session.WithLogger(logger),
		session.WithObserver(metrics),
		session.WithPlaygroundOptions(pgOpts...),
	}
	var store ports.PlaygroundStore = memory.NewStore(memory.WithTTL(cfg.Server.TTL()))
	if cfg.Server.RedisURL != "" {
		rs, err := redis.New(cfg.Server.RedisURL,
			redis.WithTTL(cfg.Server.TTL()),
			redis.WithPlaygroundOptions(pgOpts...),
		)
		if err != nil {
			return nil, err
		}
		store = rs
		managerOpts = append(managerOpts, session.WithLocker(redis.NewLocker(rs.Client(), redis.DefaultPrefix), session.DefaultLockTTL))
		logger.Info("Using Redis session store", "ttl", cfg.Server.TTL())
	}
	sessions := session.NewManager(store, managerOpts...)

	return httpAdapter.NewHandler(sessions,
		httpAdapter.WithLogger(logger),
		httpAdapter.WithLibrary(lib),
		httpAdapter.WithMetrics(metrics),
		httpAdapter.WithRequestValidation(cfg.Server.ValidateRequests),
		httpAdapter.WithInitialSource(cfg.Playground.InitialSource),
	)
}

// Serve runs the HTTP playground until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	handler, err := NewHandler(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting Sail Server", "address", srv.Addr, "examples", cfg.Playground.ExamplesDir)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Start shutdown")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		logger.Info("Sail Server stopped gracefully")
		return nil
	}
}

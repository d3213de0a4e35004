// Package server wires the router and runs the HTTP listener.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"stormgis/internal/api"
	"stormgis/internal/core/config"
	"stormgis/internal/core/health"
	imw "stormgis/internal/core/middleware"
)

func Router(logger *slog.Logger, h *api.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(imw.Recover(logger))
	r.Use(imw.RequestID())
	r.Use(imw.Logging(logger))
	r.Use(imw.CORS())

	r.Get("/healthz", health.Liveness())
	h.Routes(r)
	return r
}

func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, h *api.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           Router(logger, h),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// bulk exports can take a while against slow upstreams
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}

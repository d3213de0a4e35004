package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stormgis/internal/api"
	"stormgis/internal/arcgis"
	"stormgis/internal/core/config"
	"stormgis/internal/core/httpclient"
	"stormgis/internal/core/observability"
	"stormgis/internal/core/server"
	"stormgis/internal/logger"
	"stormgis/internal/mapimage"
	"stormgis/internal/metrics"
	"stormgis/internal/registry"
	"stormgis/internal/resolver"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "server",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting",
		"addr", cfg.Addr,
		"version", Version,
		"upstream_timeout", cfg.UpstreamTimeout.String(),
		"bulk_workers", cfg.BulkWorkers)

	reg, err := registry.Default()
	if err != nil {
		appLog.Error("dataset registry is invalid", "err", err)
		return 1
	}

	prober := arcgis.NewProber(appLog, httpclient.NewOutbound(), cfg.UpstreamTimeout)
	res := resolver.New(appLog, reg, prober)
	h := api.New(appLog, res, cfg, mapimage.Render)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		p := metrics.Init()
		observability.Init(p.Registerer(), true)

		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, p.Handler())
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		go func() {
			log.Printf("metrics: listening on %s%s", cfg.Metrics.Addr, cfg.Metrics.Path)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("metrics server exited: %v", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("metrics: shutdown error: %v", err)
			}
		}()
	}

	if err := server.Run(ctx, cfg, appLog, h); err != nil {
		appLog.Error("server exited with error", "err", err)
		return 1
	}
	appLog.Info("server stopped")
	return 0
}

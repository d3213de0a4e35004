// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type MetricsCfg struct {
	Enabled bool
	Addr    string
	Path    string
}

type Config struct {
	Addr            string
	LogLevel        string
	UpstreamTimeout time.Duration
	BulkWorkers     int
	BulkMaxItems    int
	Metrics         MetricsCfg
}

func FromEnv() Config {
	workers := getint("BULK_WORKERS", 4)
	if workers < 1 {
		workers = 1
	}
	return Config{
		Addr:            getenv("ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		UpstreamTimeout: getduration("UPSTREAM_TIMEOUT", 20*time.Second),
		BulkWorkers:     workers,
		BulkMaxItems:    getint("BULK_MAX_ITEMS", 500),
		Metrics: MetricsCfg{
			Enabled: getbool("METRICS_ENABLED", false),
			Addr:    getenv("METRICS_ADDR", ":9090"),
			Path:    getenv("METRICS_PATH", "/metrics"),
		},
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

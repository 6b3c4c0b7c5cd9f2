package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphummel/nts_configurator/internal/handlers"
	"github.com/tphummel/nts_configurator/internal/metrics"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
)

type config struct {
	Port      string
	PublicURL string
	// Token gates /api/v1/*. Empty leaves the API open.
	Token    string
	LogLevel slog.Level
}

// loadConfig reads service configuration from environment variables and
// applies defaults. A .env file in the working directory is loaded first
// when present; variables already set in the environment win.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := config{
		Port:      os.Getenv("PORT"),
		PublicURL: os.Getenv("PUBLIC_URL"),
		Token:     os.Getenv("API_TOKEN"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + cfg.Port + "/"
	}
	u, err := url.Parse(cfg.PublicURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return config{}, fmt.Errorf("PUBLIC_URL must be an absolute URL, got %q", cfg.PublicURL)
	}

	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(lvl))); err != nil {
			return config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.Token == "" {
		slog.Warn("API_TOKEN not set, /api/v1 is open")
	}

	metrics.Register(prometheus.DefaultRegisterer)

	h := &handlers.Handler{PublicURL: cfg.PublicURL, Version: version, Commit: commit}
	handler := handlers.Wrap(logger, handlers.NewMux(h, cfg.Token))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr, "public_url", cfg.PublicURL, "version", version)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	slog.Info("server stopped")
}

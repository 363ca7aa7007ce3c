package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/shiurhub/shiurhub"
	"github.com/shiurhub/shiurhub/infrastructure/api"
	v1 "github.com/shiurhub/shiurhub/infrastructure/api/v1"
	"github.com/shiurhub/shiurhub/internal/config"
	"github.com/shiurhub/shiurhub/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                         Server host to bind to (default: 0.0.0.0)
  PORT                         Server port to listen on (default: 8080)
  DATA_DIR                     Data directory (default: ~/.shiurhub)
  DB_URL                       Database URL (default: sqlite:///{data_dir}/shiurhub.db)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)
  SEARCH_LIMIT                 Default search result limit (default: 50)
  QUERY_TIMEOUT_SECONDS        Per-query storage timeout in seconds (default: 5)
  CORS_ORIGINS                 Comma-separated list of allowed browser origins

  EMBEDDING_*                  Embedding endpoint configuration
    BASE_URL                   Base URL (e.g., https://api.openai.com/v1)
    MODEL                      Model identifier (default: text-embedding-3-small)
    API_KEY                    API key for authentication
    TIMEOUT_SECONDS            Request timeout in seconds (default: 5)
    DIMENSION                  Vector dimension of the model (default: 1536)

  DB_MAX_OPEN_CONNS            Connection pool size (default: 20)
  DB_MAX_IDLE_CONNS            Idle connections kept (default: 5)
  DB_CONN_MAX_LIFETIME_SECONDS Maximum connection lifetime (default: 1800)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg)
	logger.Info("starting shiurhub",
		"version", version,
		"addr", cfg.Addr(),
		"log_level", cfg.LogLevel(),
		"embedding_enabled", cfg.Embedding().Enabled(),
	)

	ctx := context.Background()
	client, err := shiurhub.New(ctx,
		shiurhub.WithConfig(cfg),
		shiurhub.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("create shiurhub client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close shiurhub client", "error", err)
		}
	}()

	server := api.NewServer(cfg.Addr(), logger, cfg.CORSOrigins())
	router := server.Router()

	searchHandler := v1.NewSearchHandler(client.Search, client.Videos, logger)
	videoHandler := v1.NewVideoHandler(client.Videos, logger)
	router.Route("/api", func(r chi.Router) {
		searchHandler.RegisterRoutes(r)
		videoHandler.RegisterRoutes(r)
	})

	router.Get("/health", healthHandler)
	router.Get("/healthz", healthHandler)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"name":"shiurhub","version":"%s"}`, version)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("shutdown signal received, draining requests")
		shutdownCtx, cancel := shutdownContext()
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// shutdownTimeout is how long in-flight requests get to drain after a
// termination signal.
const shutdownTimeout = 15 * time.Second

// shutdownContext is detached from the serving context: by the time the
// signal arrives the request contexts are being torn down, and Shutdown
// must outlive them to drain anything.
func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), shutdownTimeout)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}

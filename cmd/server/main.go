package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rpattn/csvcheck/internal/config"
	"github.com/rpattn/csvcheck/internal/db"
	"github.com/rpattn/csvcheck/internal/logger"
	"github.com/rpattn/csvcheck/internal/middleware"
	"github.com/rpattn/csvcheck/internal/repository"
	"github.com/rpattn/csvcheck/internal/upload"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runRepo, closeDB := setupRunRepository(ctx, cfg.Database, log)
	defer closeDB()

	service := upload.NewService(runRepo, log)

	handler := newHandler(cfg, service, log)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("addr", cfg.Server.Addr).
			Strs("allowed_origins", cfg.CORS.AllowedOrigins).
			Bool("run_log", cfg.Database.Enabled).
			Msg("starting validation server")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}

	log.Info().Msg("server exited")
}

// newHandler wraps the API routes with CORS, request ids and access logging.
func newHandler(cfg config.Config, service *upload.Service, log zerolog.Logger) http.Handler {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodHead,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
	})

	routes := upload.NewRouter(service, cfg.Server.MaxUploadBytes, log)
	return middleware.RequestID(middleware.LoggingMiddleware(log)(corsHandler.Handler(routes)))
}

// setupRunRepository connects to Postgres when the run log is enabled and
// falls back to a no-op repository otherwise.
func setupRunRepository(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (repository.ValidationRunRepository, func()) {
	if !cfg.Enabled {
		return repository.NewNoopValidationRunRepository(), func() {}
	}

	if err := db.RunMigrations(cfg.Config); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	conn, err := db.NewConnection(ctx, cfg.Config)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	log.Info().Str("host", cfg.Host).Str("dbname", cfg.DBName).Msg("validation run log enabled")
	return repository.NewValidationRunRepository(conn.Pool), conn.Close
}

// Command students-api serves the students CRUD API.
//
// Startup sequence:
//  1. Load configuration (environment, optional .env and YAML file)
//  2. Build the logger
//  3. Open the database selected by DB_DRIVER
//  4. Register routes and start the HTTP server
//  5. Block until SIGINT/SIGTERM, then shut down gracefully
//
// Running locally against SQLite:
//
//	DB_DRIVER=sqlite3 go run ./cmd/students-api
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Loads ./.env into the process environment before config is read.
	_ "github.com/joho/godotenv/autoload"

	"github.com/aanand-mishra/studentdb-api/internal/config"
	"github.com/aanand-mishra/studentdb-api/internal/http/router"
	"github.com/aanand-mishra/studentdb-api/internal/logger"
	"github.com/aanand-mishra/studentdb-api/internal/storage"
	"github.com/aanand-mishra/studentdb-api/internal/storage/mysql"
	"github.com/aanand-mishra/studentdb-api/internal/storage/postgres"
	"github.com/aanand-mishra/studentdb-api/internal/storage/sqlite"
	"github.com/aanand-mishra/studentdb-api/internal/storage/sqlstore"
)

const connectTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.Env, cfg.LogLevel)
	log.Info().Str("driver", cfg.Database.Driver).Msg("starting students-api")

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	store, err := openStorage(ctx, cfg.Database)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise storage")
	}
	defer store.Close()

	log.Info().Str("driver", cfg.Database.Driver).Str("database", cfg.Database.Name).Msg("storage initialised")

	server := &http.Server{
		Addr: cfg.HTTPServer.Addr(),
		Handler: router.New(store, log, router.Options{
			StaticDir:      cfg.StaticDir,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		}),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("address", server.Addr).Msg("server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server encountered an error")
			stop()
		}
	}()

	<-sigCtx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown server gracefully")
		return
	}

	log.Info().Msg("server stopped gracefully")
}

func openStorage(ctx context.Context, cfg config.Database) (storage.Storage, error) {
	var (
		store *sqlstore.Store
		err   error
	)

	switch cfg.Driver {
	case "mysql":
		store, err = mysql.New(ctx, cfg)
	case "postgres":
		store, err = postgres.New(ctx, cfg)
	case "sqlite3":
		store, err = sqlite.New(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	return store, nil
}

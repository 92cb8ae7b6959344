// bookmarkd - a multi-user bookmark API.
//
// The interesting part is the authentication core: argon2id credential
// hashing, dual-secret access/refresh JWT issuance, bearer-token request
// authentication, and per-owner access control on bookmarks.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mlodden/bookmarkd/migrations"

	"github.com/mlodden/bookmarkd/internal/api"
	"github.com/mlodden/bookmarkd/internal/auth"
	"github.com/mlodden/bookmarkd/internal/bookmark"
	"github.com/mlodden/bookmarkd/internal/infrastructure/config"
	"github.com/mlodden/bookmarkd/internal/infrastructure/database"
	"github.com/mlodden/bookmarkd/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Default configuration file path.
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting bookmarkd",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Wire the auth core
	tokens := cfg.Security.Tokens
	issuer := auth.NewIssuer(tokens.AccessSecret, tokens.RefreshSecret,
		tokens.GetAccessTTL(), tokens.GetRefreshTTL())
	userRepo := auth.NewUserRepository(db.DB)
	authService := auth.NewService(userRepo, issuer)

	bookmarkRepo := bookmark.NewRepository(db.DB)
	bookmarkService := bookmark.NewService(bookmarkRepo)

	server, err := api.New(api.Deps{
		Config:    cfg.Server,
		Logger:    log.With("component", "api"),
		Issuer:    issuer,
		Users:     userRepo,
		Auth:      authService,
		Bookmarks: bookmarkService,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("bookmarkd running", "address", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port))

	<-ctx.Done()
	log.Info("shutdown signal received")

	return nil
}

// getConfigPath resolves the config file path from the -config flag,
// the BOOKMARKD_CONFIG environment variable, or the default.
func getConfigPath() string {
	path := flag.String("config", "", "path to configuration file")
	flag.Parse()

	if *path != "" {
		return *path
	}
	if env := os.Getenv("BOOKMARKD_CONFIG"); env != "" {
		return env
	}
	return defaultConfigPath
}

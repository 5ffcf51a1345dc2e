package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ersonp/hunt-tracker/internal/application/handlers"
	"github.com/ersonp/hunt-tracker/internal/domain/attributes"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/archive"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/logging"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/relationaldb/sqlite"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/vectordb/qdrant"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config          *config.Config
	Logger          *slog.Logger
	Console         *logging.ConsoleHandler
	Bounds          attributes.BoundStrategy
	SnapshotHandler *handlers.SnapshotHandler
	MatchHandler    *handlers.MatchHandler
}

// basePath returns the directory holding .hunt.
func basePath() (string, error) {
	if globalConfigDir != "" {
		return globalConfigDir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

// loadConfig loads the config and sets up console logging.
func loadConfig() (*config.Config, *slog.Logger, *logging.ConsoleHandler, error) {
	base, err := basePath()
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := config.Load(base)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, console, err := logging.Setup(cfg.Log, os.Stderr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	return cfg, logger, console, nil
}

// openStore opens the SQLite match store.
func openStore(cfg config.SQLiteConfig) (ports.MatchStore, error) {
	return sqlite.NewRepository(cfg)
}

// openIndex connects to the Qdrant lobby index.
func openIndex(cfg config.QdrantConfig) (ports.LobbyIndex, error) {
	return qdrant.NewRepository(cfg)
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cfg, logger, console, err := loadConfig()
	if err != nil {
		return err
	}

	bounds, err := attributes.ParseBoundStrategy(cfg.Attributes.Bounds)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(cfg.ResourcesDir, 0755); err != nil {
		return fmt.Errorf("creating resources directory: %w", err)
	}

	store, err := openStore(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	// Ensure schema exists
	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	// The lobby index is optional; matches are still recorded without it
	var index ports.LobbyIndex
	if cfg.Qdrant.Enabled {
		repo, err := openIndex(cfg.Qdrant)
		if err != nil {
			return fmt.Errorf("creating qdrant repository: %w", err)
		}
		defer repo.Close()

		if err := repo.EnsureCollection(ctx); err != nil {
			logger.Warn("lobby index unavailable", "host", cfg.Qdrant.Host, "error", err)
		} else {
			index = repo
		}
	}

	matchService := services.NewMatchService(store, archive.New(cfg.ResourcesDir, cfg.Archive), index, logger)
	reportService := services.NewReportService()

	deps := &Deps{
		Config:          cfg,
		Logger:          logger,
		Console:         console,
		Bounds:          bounds,
		SnapshotHandler: handlers.NewSnapshotHandler(matchService, reportService, bounds, cfg.ProfileID),
		MatchHandler:    handlers.NewMatchHandler(matchService),
	}

	return fn(deps)
}

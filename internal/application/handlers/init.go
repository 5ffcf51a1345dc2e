package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/hunt-tracker/internal/domain/ports"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

// StoreOpener opens the match store described by cfg.
type StoreOpener func(cfg config.SQLiteConfig) (ports.MatchStore, error)

// IndexOpener opens the lobby index described by cfg.
type IndexOpener func(cfg config.QdrantConfig) (ports.LobbyIndex, error)

// InitHandler handles workspace initialization.
type InitHandler struct {
	openStore StoreOpener
	openIndex IndexOpener
}

// NewInitHandler creates a new init handler. openIndex may be nil.
func NewInitHandler(openStore StoreOpener, openIndex IndexOpener) *InitHandler {
	return &InitHandler{
		openStore: openStore,
		openIndex: openIndex,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath     string
	ResourcesDir   string
	DatabasePath   string
	CollectionName string
}

// Handle writes the default config, creates the resources directory and the
// match database schema, and the lobby collection when Qdrant is enabled.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("hunt already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(cfg.ResourcesDir, 0755); err != nil {
		return nil, fmt.Errorf("creating resources directory: %w", err)
	}

	store, err := h.openStore(cfg.SQLite)
	if err != nil {
		return nil, fmt.Errorf("opening match database: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	result := &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		ResourcesDir: cfg.ResourcesDir,
		DatabasePath: cfg.SQLite.Path,
	}

	if cfg.Qdrant.Enabled && h.openIndex != nil {
		index, err := h.openIndex(cfg.Qdrant)
		if err != nil {
			return nil, fmt.Errorf("connecting to lobby index: %w", err)
		}
		defer index.Close()

		if err := index.EnsureCollection(ctx); err != nil {
			return nil, fmt.Errorf("creating collection: %w", err)
		}
		result.CollectionName = cfg.Qdrant.Collection
	}

	return result, nil
}

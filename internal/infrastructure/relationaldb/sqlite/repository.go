// Package sqlite provides a SQLite implementation of the MatchStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// Repository implements ports.MatchStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: opens a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode so the watch loop and read commands can overlap
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Recorded matches (one row per distinct telemetry snapshot)
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		hash VARCHAR(64) NOT NULL UNIQUE,
		team_count INTEGER NOT NULL,
		player_count INTEGER NOT NULL,
		own_team_mmr INTEGER NOT NULL DEFAULT 0,
		archive_path TEXT NOT NULL DEFAULT '',
		recorded_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_matches_recorded ON matches(recorded_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// HasHash reports whether a match with this hash was already recorded.
func (r *Repository) HasHash(ctx context.Context, hash string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM matches WHERE hash = ?)`, hash).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking match hash: %w", err)
	}
	return exists == 1, nil
}

// SaveMatch stores a match summary. An empty ID is filled with a new UUID.
// Saving a hash that already exists leaves the stored row untouched.
func (r *Repository) SaveMatch(ctx context.Context, match *entities.MatchSummary) error {
	if match.ID == "" {
		match.ID = generateUUID()
	}

	query := `
		INSERT INTO matches (id, hash, team_count, player_count, own_team_mmr, archive_path, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		match.ID,
		match.Hash,
		match.TeamCount,
		match.PlayerCount,
		match.OwnTeamMMR,
		match.ArchivePath,
		match.RecordedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving match: %w", err)
	}
	return nil
}

// FindMatchByHash returns the match whose hash equals or starts with hash.
func (r *Repository) FindMatchByHash(ctx context.Context, hash string) (*entities.MatchSummary, error) {
	if hash == "" {
		return nil, nil
	}

	query := `
		SELECT id, hash, team_count, player_count, own_team_mmr, archive_path, recorded_at
		FROM matches
		WHERE substr(hash, 1, ?) = ?
		LIMIT 2
	`
	rows, err := r.db.QueryContext(ctx, query, len(hash), hash)
	if err != nil {
		return nil, fmt.Errorf("querying match: %w", err)
	}
	defer rows.Close()

	matches, err := scanMatches(rows, 2)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, ports.ErrAmbiguousHash
	}
}

// ListMatches lists match summaries, most recent first.
func (r *Repository) ListMatches(ctx context.Context, limit, offset int) ([]entities.MatchSummary, error) {
	query := `
		SELECT id, hash, team_count, player_count, own_team_mmr, archive_path, recorded_at
		FROM matches
		ORDER BY recorded_at DESC
		LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows, limit)
}

// CountMatches returns the number of recorded matches.
func (r *Repository) CountMatches(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting matches: %w", err)
	}
	return count, nil
}

func scanMatches(rows *sql.Rows, capacity int) ([]entities.MatchSummary, error) {
	if capacity < 0 {
		capacity = 0
	}
	result := make([]entities.MatchSummary, 0, capacity)
	for rows.Next() {
		var m entities.MatchSummary
		if err := rows.Scan(
			&m.ID,
			&m.Hash,
			&m.TeamCount,
			&m.PlayerCount,
			&m.OwnTeamMMR,
			&m.ArchivePath,
			&m.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

package ports

import (
	"context"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// SimilarLobby is one search hit of a LobbyIndex.
type SimilarLobby struct {
	Hash       string  `json:"hash"`
	Score      float32 `json:"score"`
	TeamCount  int     `json:"team_count"`
	OwnTeamMMR int     `json:"own_team_mmr"`
	RecordedAt string  `json:"recorded_at"`
}

// LobbyIndex indexes matches by the MMR make-up of their lobby.
type LobbyIndex interface {
	// EnsureCollection creates the backing collection if it doesn't exist.
	EnsureCollection(ctx context.Context) error

	// Upsert adds or replaces match in the index.
	Upsert(ctx context.Context, match *entities.Match) error

	// Similar returns up to limit indexed matches closest to match,
	// excluding match itself.
	Similar(ctx context.Context, match *entities.Match, limit int) ([]SimilarLobby, error)

	// Close releases the connection.
	Close() error
}

package ports

import (
	"context"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// Archive writes full match data to durable storage.
type Archive interface {
	// Save writes match and returns its location. existed is true when an
	// archive entry with the same hash was already present; nothing is
	// written in that case and path points at the existing entry.
	Save(ctx context.Context, match *entities.Match) (path string, existed bool, err error)

	// Load reads a match previously written by Save.
	Load(ctx context.Context, path string) (*entities.Match, error)
}

// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"errors"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// ErrAmbiguousHash is returned when a hash prefix matches several matches.
var ErrAmbiguousHash = errors.New("hash prefix matches more than one match")

// MatchStore persists summaries of recorded matches and answers duplicate
// checks by hash.
type MatchStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// HasHash reports whether a match with this hash was already recorded.
	HasHash(ctx context.Context, hash string) (bool, error)

	// SaveMatch stores a match summary. Saving an existing hash is a no-op.
	SaveMatch(ctx context.Context, match *entities.MatchSummary) error

	// FindMatchByHash returns the summary for hash, or nil if none exists.
	// A hash prefix is accepted as well; ErrAmbiguousHash is returned when it
	// is not unique.
	FindMatchByHash(ctx context.Context, hash string) (*entities.MatchSummary, error)

	// ListMatches lists summaries, most recent first.
	ListMatches(ctx context.Context, limit, offset int) ([]entities.MatchSummary, error)

	// CountMatches returns the number of recorded matches.
	CountMatches(ctx context.Context) (int, error)
}

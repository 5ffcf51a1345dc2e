// Package services contains domain business logic.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
)

const (
	// DefaultListLimit is the default number of matches to list.
	DefaultListLimit = 20
	// DefaultSimilarLimit is the default number of similar lobbies to return.
	DefaultSimilarLimit = 5
)

var (
	// ErrMatchNotFound is returned when no recorded match has the given hash.
	ErrMatchNotFound = errors.New("match not found")
	// ErrIndexDisabled is returned by similarity queries without a lobby index.
	ErrIndexDisabled = errors.New("lobby index is disabled")
)

// RecordResult describes what Record did with a snapshot.
type RecordResult struct {
	Match *entities.Match
	// Duplicate is set when the match store already knew the hash; nothing
	// was written.
	Duplicate bool
	// AlreadyArchived is set when the archive already held an entry for the
	// hash. The summary row is still written.
	AlreadyArchived bool
}

// MatchService records parsed snapshots and answers queries about them.
type MatchService struct {
	store   ports.MatchStore
	archive ports.Archive
	index   ports.LobbyIndex
	logger  *slog.Logger
	now     func() time.Time
}

// NewMatchService creates a new match service. index may be nil.
func NewMatchService(store ports.MatchStore, archive ports.Archive, index ports.LobbyIndex, logger *slog.Logger) *MatchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MatchService{
		store:   store,
		archive: archive,
		index:   index,
		logger:  logger,
		now:     time.Now,
	}
}

// Record stores teams as a new match unless an identical one was recorded
// before. Lobby indexing failures are logged and do not fail the call.
func (s *MatchService) Record(ctx context.Context, teams []entities.Team) (*RecordResult, error) {
	match, err := entities.NewMatch("", teams, s.now())
	if err != nil {
		return nil, fmt.Errorf("building match: %w", err)
	}
	result := &RecordResult{Match: match}

	seen, err := s.store.HasHash(ctx, match.Hash)
	if err != nil {
		return nil, fmt.Errorf("checking match hash: %w", err)
	}
	if seen {
		result.Duplicate = true
		return result, nil
	}

	path, existed, err := s.archive.Save(ctx, match)
	if err != nil {
		return nil, fmt.Errorf("archiving match: %w", err)
	}
	match.ArchivePath = path
	result.AlreadyArchived = existed

	summary := match.Summary()
	if err := s.store.SaveMatch(ctx, &summary); err != nil {
		return nil, fmt.Errorf("saving match: %w", err)
	}
	match.ID = summary.ID

	if s.index != nil {
		if err := s.index.Upsert(ctx, match); err != nil {
			s.logger.Warn("indexing lobby failed", "hash", match.ShortHash(), "error", err)
		}
	}

	return result, nil
}

// List returns recorded matches, most recent first.
func (s *MatchService) List(ctx context.Context, limit, offset int) ([]entities.MatchSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	matches, err := s.store.ListMatches(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return matches, nil
}

// Count returns the number of recorded matches.
func (s *MatchService) Count(ctx context.Context) (int, error) {
	n, err := s.store.CountMatches(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting matches: %w", err)
	}
	return n, nil
}

// Find loads the full match recorded under hash or a unique prefix of it.
func (s *MatchService) Find(ctx context.Context, hash string) (*entities.Match, error) {
	summary, err := s.store.FindMatchByHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("finding match: %w", err)
	}
	if summary == nil {
		return nil, fmt.Errorf("%w: %s", ErrMatchNotFound, hash)
	}

	match, err := s.archive.Load(ctx, summary.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("loading archived match: %w", err)
	}
	match.ID = summary.ID
	return match, nil
}

// Similar returns lobbies whose MMR make-up is closest to the match
// recorded under hash.
func (s *MatchService) Similar(ctx context.Context, hash string, limit int) ([]ports.SimilarLobby, error) {
	if s.index == nil {
		return nil, ErrIndexDisabled
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	match, err := s.Find(ctx, hash)
	if err != nil {
		return nil, err
	}

	lobbies, err := s.index.Similar(ctx, match, limit)
	if err != nil {
		return nil, fmt.Errorf("searching similar lobbies: %w", err)
	}
	return lobbies, nil
}

package handlers

import (
	"context"
	"fmt"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
)

// MatchHandler handles queries over recorded matches.
type MatchHandler struct {
	matches *services.MatchService
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// ListResult contains one page of recorded matches.
type ListResult struct {
	Matches []entities.MatchSummary
	Total   int
}

// List returns a page of recorded matches, most recent first.
func (h *MatchHandler) List(ctx context.Context, limit, offset int) (*ListResult, error) {
	matches, err := h.matches.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := h.matches.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResult{Matches: matches, Total: total}, nil
}

// SimilarResult contains the lobbies closest to a recorded match.
type SimilarResult struct {
	Match   *entities.Match
	Lobbies []ports.SimilarLobby
}

// Similar looks up the match recorded under hash and returns lobbies with a
// similar MMR make-up.
func (h *MatchHandler) Similar(ctx context.Context, hash string, limit int) (*SimilarResult, error) {
	if hash == "" {
		return nil, fmt.Errorf("hash is required")
	}
	match, err := h.matches.Find(ctx, hash)
	if err != nil {
		return nil, err
	}
	lobbies, err := h.matches.Similar(ctx, match.Hash, limit)
	if err != nil {
		return nil, err
	}
	return &SimilarResult{Match: match, Lobbies: lobbies}, nil
}

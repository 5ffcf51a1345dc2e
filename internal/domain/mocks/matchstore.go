// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
)

// MatchStore is a mock implementation of ports.MatchStore.
type MatchStore struct {
	Matches map[string]entities.MatchSummary
	Err     error

	// Separate from Err for fine-grained control
	SaveErr error

	// Call tracking
	HasHashCallCount   int
	SaveMatchCallCount int
}

// NewMatchStore creates a new mock MatchStore.
func NewMatchStore() *MatchStore {
	return &MatchStore{
		Matches: make(map[string]entities.MatchSummary),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *MatchStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *MatchStore) Close() error {
	return nil
}

// HasHash reports whether hash was saved.
func (m *MatchStore) HasHash(_ context.Context, hash string) (bool, error) {
	m.HasHashCallCount++
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Matches[hash]
	return ok, nil
}

// SaveMatch stores the summary.
func (m *MatchStore) SaveMatch(_ context.Context, match *entities.MatchSummary) error {
	m.SaveMatchCallCount++
	if m.Err != nil {
		return m.Err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, ok := m.Matches[match.Hash]; !ok {
		m.Matches[match.Hash] = *match
	}
	return nil
}

// FindMatchByHash finds a summary by full hash or unique prefix.
func (m *MatchStore) FindMatchByHash(_ context.Context, hash string) (*entities.MatchSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if hash == "" {
		return nil, nil
	}
	var found *entities.MatchSummary
	for h, s := range m.Matches {
		if strings.HasPrefix(h, hash) {
			if found != nil {
				return nil, ports.ErrAmbiguousHash
			}
			s := s
			found = &s
		}
	}
	return found, nil
}

// ListMatches lists summaries, most recent first.
func (m *MatchStore) ListMatches(_ context.Context, limit, offset int) ([]entities.MatchSummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.MatchSummary, 0, len(m.Matches))
	for _, s := range m.Matches {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	if offset >= len(result) {
		return []entities.MatchSummary{}, nil
	}
	result = result[offset:]
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// CountMatches returns the number of stored summaries.
func (m *MatchStore) CountMatches(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Matches), nil
}

package mocks

import (
	"context"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/ports"
)

// LobbyIndex is a mock implementation of ports.LobbyIndex.
type LobbyIndex struct {
	Results []ports.SimilarLobby
	Err     error

	// Separate from Err for fine-grained control
	UpsertErr error

	// Call tracking
	EnsureCollectionCallCount int
	UpsertCallCount           int
	UpsertLastMatch           *entities.Match
	SimilarCallCount          int
	SimilarLastLimit          int
}

// EnsureCollection returns the configured error.
func (m *LobbyIndex) EnsureCollection(_ context.Context) error {
	m.EnsureCollectionCallCount++
	return m.Err
}

// Upsert records the call.
func (m *LobbyIndex) Upsert(_ context.Context, match *entities.Match) error {
	m.UpsertCallCount++
	m.UpsertLastMatch = match
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	return m.Err
}

// Similar returns the configured results.
func (m *LobbyIndex) Similar(_ context.Context, _ *entities.Match, limit int) ([]ports.SimilarLobby, error) {
	m.SimilarCallCount++
	m.SimilarLastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

// Close releases nothing.
func (m *LobbyIndex) Close() error {
	return nil
}

package mocks

import (
	"context"
	"fmt"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// Archive is a mock implementation of ports.Archive.
type Archive struct {
	Matches map[string]*entities.Match
	// Existing marks hashes reported as already archived.
	Existing map[string]bool
	Err      error

	// Call tracking
	SaveCallCount int
}

// NewArchive creates a new mock Archive.
func NewArchive() *Archive {
	return &Archive{
		Matches:  make(map[string]*entities.Match),
		Existing: make(map[string]bool),
	}
}

// Save stores match under a synthetic path.
func (m *Archive) Save(_ context.Context, match *entities.Match) (string, bool, error) {
	m.SaveCallCount++
	if m.Err != nil {
		return "", false, m.Err
	}
	path := "archive/" + match.ShortHash() + ".json"
	if m.Existing[match.Hash] {
		return path, true, nil
	}
	m.Matches[path] = match
	return path, false, nil
}

// Load returns the match saved under path.
func (m *Archive) Load(_ context.Context, path string) (*entities.Match, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	match, ok := m.Matches[path]
	if !ok {
		return nil, fmt.Errorf("archive entry not found: %s", path)
	}
	return match, nil
}

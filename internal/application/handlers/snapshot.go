// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/ersonp/hunt-tracker/internal/domain/attributes"
	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/xmlattr"
)

// SkipReason explains why a snapshot was not recorded.
type SkipReason int

const (
	// NotSkipped means the snapshot was recorded.
	NotSkipped SkipReason = iota
	// SkipMalformed means the XML could not be decoded, usually because the
	// game was still writing it.
	SkipMalformed
	// SkipInvalid means the attributes did not decode into teams.
	SkipInvalid
	// SkipEmpty means the snapshot holds no teams.
	SkipEmpty
	// SkipSeen means the same teams were handled earlier in this session.
	SkipSeen
)

// String returns a human-readable representation of the SkipReason.
func (r SkipReason) String() string {
	switch r {
	case NotSkipped:
		return "recorded"
	case SkipMalformed:
		return "malformed"
	case SkipInvalid:
		return "invalid"
	case SkipEmpty:
		return "empty"
	case SkipSeen:
		return "seen"
	default:
		return "unknown"
	}
}

// SnapshotResult contains the outcome of handling one snapshot.
type SnapshotResult struct {
	Path    string
	Skipped SkipReason
	// Err is the decode error behind SkipMalformed or SkipInvalid.
	Err    error
	Teams  []entities.Team
	Record *services.RecordResult
	Report services.Report
}

// ParseFile reads the attributes file at path and enumerates its teams.
// Decode failures wrap xmlattr.ErrMalformed.
func ParseFile(path string, bounds attributes.BoundStrategy) ([]entities.Team, error) {
	doc, err := xmlattr.ReadFile(path)
	if err != nil {
		return nil, err
	}
	teams, err := attributes.Enumerator{Bounds: bounds}.Enumerate(doc)
	if err != nil {
		return nil, fmt.Errorf("enumerating teams: %w", err)
	}
	return teams, nil
}

// SnapshotHandler turns attributes file changes into recorded matches.
// It keeps the hashes it has seen in memory and must be used from a single
// goroutine.
type SnapshotHandler struct {
	matches   *services.MatchService
	reports   *services.ReportService
	bounds    attributes.BoundStrategy
	profileID int
	seen      map[string]struct{}
}

// NewSnapshotHandler creates a new snapshot handler.
func NewSnapshotHandler(matches *services.MatchService, reports *services.ReportService, bounds attributes.BoundStrategy, profileID int) *SnapshotHandler {
	return &SnapshotHandler{
		matches:   matches,
		reports:   reports,
		bounds:    bounds,
		profileID: profileID,
		seen:      make(map[string]struct{}),
	}
}

// HandleFile parses the attributes file at path and records the match it
// describes. Snapshots that cannot be used are reported through
// SnapshotResult.Skipped; only I/O and storage failures return an error.
func (h *SnapshotHandler) HandleFile(ctx context.Context, path string) (*SnapshotResult, error) {
	result := &SnapshotResult{Path: path}

	teams, err := ParseFile(path, h.bounds)
	switch {
	case errors.Is(err, xmlattr.ErrMalformed):
		result.Skipped = SkipMalformed
		result.Err = err
		return result, nil
	case isCodecError(err):
		result.Skipped = SkipInvalid
		result.Err = err
		return result, nil
	case err != nil:
		return nil, err
	}
	result.Teams = teams

	if len(teams) == 0 {
		result.Skipped = SkipEmpty
		return result, nil
	}

	hash, err := entities.HashTeams(teams)
	if err != nil {
		return nil, err
	}
	if _, ok := h.seen[hash]; ok {
		result.Skipped = SkipSeen
		return result, nil
	}

	record, err := h.matches.Record(ctx, teams)
	if err != nil {
		return nil, fmt.Errorf("recording match: %w", err)
	}
	h.seen[hash] = struct{}{}

	result.Record = record
	result.Report = h.reports.Build(teams, h.profileID)
	return result, nil
}

// Seen returns the number of distinct snapshots handled so far.
func (h *SnapshotHandler) Seen() int {
	return len(h.seen)
}

func isCodecError(err error) bool {
	var (
		enumErr     *attributes.EnumerationError
		missingErr  *attributes.MissingAttributeError
		coercionErr *attributes.TypeCoercionError
	)
	return errors.As(err, &enumErr) || errors.As(err, &missingErr) || errors.As(err, &coercionErr)
}

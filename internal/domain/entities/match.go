package entities

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeebo/blake3"
)

// Match is one distinct parsed snapshot of the telemetry file.
type Match struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash"`
	Teams       []Team    `json:"teams"`
	RecordedAt  time.Time `json:"recorded_at"`
	ArchivePath string    `json:"archive_path,omitempty"`
}

// MatchSummary is the persisted, team-less view of a recorded match.
type MatchSummary struct {
	ID          string    `json:"id"`
	Hash        string    `json:"hash"`
	TeamCount   int       `json:"team_count"`
	PlayerCount int       `json:"player_count"`
	OwnTeamMMR  int       `json:"own_team_mmr"`
	ArchivePath string    `json:"archive_path"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// HashTeams returns the hex BLAKE3 digest of the canonical JSON encoding of
// teams. Identical team data always yields the same hash.
func HashTeams(teams []Team) (string, error) {
	data, err := json.Marshal(teams)
	if err != nil {
		return "", fmt.Errorf("encoding teams: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// NewMatch builds a Match for teams recorded at the given time.
func NewMatch(id string, teams []Team, recordedAt time.Time) (*Match, error) {
	hash, err := HashTeams(teams)
	if err != nil {
		return nil, err
	}
	return &Match{
		ID:         id,
		Hash:       hash,
		Teams:      teams,
		RecordedAt: recordedAt,
	}, nil
}

// ShortHash returns the first eight hex digits of the match hash.
func (m *Match) ShortHash() string {
	if len(m.Hash) < 8 {
		return m.Hash
	}
	return m.Hash[:8]
}

// Summary returns the persisted view of the match.
func (m *Match) Summary() MatchSummary {
	s := MatchSummary{
		ID:          m.ID,
		Hash:        m.Hash,
		TeamCount:   len(m.Teams),
		PlayerCount: CountPlayers(m.Teams),
		ArchivePath: m.ArchivePath,
		RecordedAt:  m.RecordedAt,
	}
	if own, ok := OwnTeam(m.Teams); ok {
		s.OwnTeamMMR = own.MMR
	}
	return s
}

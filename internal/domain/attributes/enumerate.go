package attributes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// BoundStrategy decides where an enumeration of teams or players stops.
type BoundStrategy int

const (
	// BoundProbe walks indices from zero until an entity is missing.
	// A missing attribute at index i ends the sequence at i entities.
	BoundProbe BoundStrategy = iota
	// BoundDeclared reads the count from MissionBagNumTeams and from each
	// team's numplayers field. A missing attribute below the declared
	// count is a hard failure.
	BoundDeclared
)

// ErrNegativeCount is returned when a declared count is below zero.
var ErrNegativeCount = errors.New("declared count is negative")

// String returns a human-readable representation of the BoundStrategy.
func (b BoundStrategy) String() string {
	switch b {
	case BoundProbe:
		return "probe"
	case BoundDeclared:
		return "declared"
	default:
		return "unknown"
	}
}

// ParseBoundStrategy maps a configuration value to a BoundStrategy.
// The empty string selects BoundProbe.
func ParseBoundStrategy(s string) (BoundStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "probe":
		return BoundProbe, nil
	case "declared":
		return BoundDeclared, nil
	default:
		return BoundProbe, fmt.Errorf("unknown bound strategy %q (valid: probe, declared)", s)
	}
}

// Enumerator assembles the Team -> Players tree of one snapshot.
type Enumerator struct {
	Bounds BoundStrategy
}

// ParseTeams enumerates teams with the probing strategy.
func ParseTeams(store Store) ([]entities.Team, error) {
	return Enumerator{Bounds: BoundProbe}.Enumerate(store)
}

// Enumerate returns every team in store, each owning its players.
// An empty snapshot yields an empty, non-nil slice and no error. Any failure
// other than the probing terminator aborts the whole enumeration.
func (e Enumerator) Enumerate(store Store) ([]entities.Team, error) {
	switch e.Bounds {
	case BoundProbe:
		return e.probeTeams(store)
	case BoundDeclared:
		return e.declaredTeams(store)
	default:
		return nil, fmt.Errorf("unknown bound strategy %d", e.Bounds)
	}
}

func (e Enumerator) probeTeams(store Store) ([]entities.Team, error) {
	teams := []entities.Team{}
	for i := 0; ; i++ {
		team, err := Deserialize(store, TeamSchema, TeamSchema.PrefixFor(i))
		if isMissing(err) {
			return teams, nil
		}
		if err != nil {
			return nil, &EnumerationError{Entity: TeamSchema.Name, Indices: []int{i}, Err: err}
		}

		players, err := e.probePlayers(store, i)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team.WithPlayers(players))
	}
}

func (e Enumerator) probePlayers(store Store, team int) ([]entities.Player, error) {
	var players []entities.Player
	for j := 0; ; j++ {
		player, err := Deserialize(store, PlayerSchema, PlayerSchema.PrefixFor(team, j))
		if isMissing(err) {
			return players, nil
		}
		if err != nil {
			return nil, &EnumerationError{Entity: PlayerSchema.Name, Indices: []int{team, j}, Err: err}
		}
		players = append(players, player)
	}
}

func (e Enumerator) declaredTeams(store Store) ([]entities.Team, error) {
	count, err := declaredCount(store, NumTeamsKey)
	if err != nil {
		return nil, &EnumerationError{Entity: TeamSchema.Name, Err: err}
	}

	// Counts come from the file; the loop below stops at the first gap.
	teams := []entities.Team{}
	for i := 0; i < count; i++ {
		team, err := Deserialize(store, TeamSchema, TeamSchema.PrefixFor(i))
		if err != nil {
			return nil, &EnumerationError{Entity: TeamSchema.Name, Indices: []int{i}, Err: err}
		}
		if team.NumPlayers < 0 {
			return nil, &EnumerationError{Entity: TeamSchema.Name, Indices: []int{i}, Err: ErrNegativeCount}
		}

		players := []entities.Player{}
		for j := 0; j < team.NumPlayers; j++ {
			player, err := Deserialize(store, PlayerSchema, PlayerSchema.PrefixFor(i, j))
			if err != nil {
				return nil, &EnumerationError{Entity: PlayerSchema.Name, Indices: []int{i, j}, Err: err}
			}
			players = append(players, player)
		}
		teams = append(teams, team.WithPlayers(players))
	}

	return teams, nil
}

func declaredCount(store Store, key string) (int, error) {
	raw, ok := store.Get(key)
	if !ok {
		return 0, &MissingAttributeError{Key: key}
	}
	v, err := DecodeValue(key, raw, KindInteger)
	if err != nil {
		return 0, err
	}
	if v.Int < 0 {
		return 0, ErrNegativeCount
	}
	return v.Int, nil
}

func isMissing(err error) bool {
	var missing *MissingAttributeError
	return errors.As(err, &missing)
}

// WriteTeams serializes teams and their players into store at dense indices
// starting from zero, and records the team count under NumTeamsKey.
func WriteTeams(store Store, teams []entities.Team) {
	store.Set(NumTeamsKey, EncodeValue(IntValue(len(teams))))
	for i, team := range teams {
		Serialize(store, TeamSchema, team, TeamSchema.PrefixFor(i))
		for j, player := range team.Players {
			Serialize(store, PlayerSchema, player, PlayerSchema.PrefixFor(i, j))
		}
	}
}

// Package entities contains core domain data structures.
package entities

// Team is one team of a match. A Team exclusively owns its Players; the
// slice is built once during parsing and must not be modified afterwards.
type Team struct {
	Handicap   int      `json:"handicap"`
	IsInvite   bool     `json:"is_invite"`
	MMR        int      `json:"mmr"`
	NumPlayers int      `json:"players_count"`
	OwnTeam    bool     `json:"own_team"`
	Players    []Player `json:"players"`
}

// WithPlayers returns a copy of t owning a copy of players.
func (t Team) WithPlayers(players []Player) Team {
	owned := make([]Player, len(players))
	copy(owned, players)
	t.Players = owned
	return t
}

// AllPlayers flattens the players of every team, in team order.
func AllPlayers(teams []Team) []Player {
	var n int
	for _, t := range teams {
		n += len(t.Players)
	}
	players := make([]Player, 0, n)
	for _, t := range teams {
		players = append(players, t.Players...)
	}
	return players
}

// CountPlayers returns the total number of players across teams.
func CountPlayers(teams []Team) int {
	var n int
	for _, t := range teams {
		n += len(t.Players)
	}
	return n
}

// OwnTeam returns the team flagged as the user's own, if any.
func OwnTeam(teams []Team) (Team, bool) {
	for _, t := range teams {
		if t.OwnTeam {
			return t, true
		}
	}
	return Team{}, false
}

package attributes

import (
	"strconv"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// Team members.
const (
	TeamHandicap     = "handicap"
	TeamIsInvite     = "is_invite"
	TeamMMR          = "mmr"
	TeamPlayersCount = "players_count"
	TeamOwnTeam      = "own_team"
)

// NumTeamsKey declares the number of teams in a snapshot.
const NumTeamsKey = "MissionBagNumTeams"

// TeamRegistry is the field table of a team.
var TeamRegistry = NewRegistry(
	FieldMapping{Member: TeamHandicap, Suffix: "handicap", Kind: KindInteger},
	FieldMapping{Member: TeamIsInvite, Suffix: "isinvite", Kind: KindBoolean},
	FieldMapping{Member: TeamMMR, Suffix: "mmr", Kind: KindInteger},
	FieldMapping{Member: TeamPlayersCount, Suffix: "numplayers", Kind: KindInteger},
	FieldMapping{Member: TeamOwnTeam, Suffix: "ownteam", Kind: KindBoolean},
)

// TeamPrefix addresses the team at index team.
func TeamPrefix(team int) string {
	return "MissionBagTeam_" + strconv.Itoa(team)
}

// TeamSchema maps entities.Team. Players are not part of the team's own
// fields; the Enumerator attaches them.
var TeamSchema = Schema[entities.Team]{
	Name:     "team",
	Registry: TeamRegistry,
	Arity:    1,
	Prefix: func(indices ...int) string {
		return TeamPrefix(indices[0])
	},
	Encode: func(t entities.Team) Record {
		return Record{
			TeamHandicap:     IntValue(t.Handicap),
			TeamIsInvite:     BoolValue(t.IsInvite),
			TeamMMR:          IntValue(t.MMR),
			TeamPlayersCount: IntValue(t.NumPlayers),
			TeamOwnTeam:      BoolValue(t.OwnTeam),
		}
	},
	Decode: func(r Record) entities.Team {
		return entities.Team{
			Handicap:   r.Int(TeamHandicap),
			IsInvite:   r.Bool(TeamIsInvite),
			MMR:        r.Int(TeamMMR),
			NumPlayers: r.Int(TeamPlayersCount),
			OwnTeam:    r.Bool(TeamOwnTeam),
		}
	},
}

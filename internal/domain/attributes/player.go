package attributes

import (
	"strconv"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// Player members.
const (
	PlayerName            = "name"
	PlayerMMR             = "mmr"
	PlayerProfileID       = "profile_id"
	PlayerKilledByMe      = "killed_by_me"
	PlayerKilledMe        = "killed_me"
	PlayerDownedByMe      = "downed_by_me"
	PlayerDownedMe        = "downed_me"
	PlayerBountyPickedUp  = "bounty_picked_up"
	PlayerBountyExtracted = "bounty_extracted"
	PlayerHadBounty       = "had_bounty"
	PlayerIsPartner       = "is_partner"
	PlayerIsSoulSurvivor  = "is_soul_survivor"
	PlayerTeamExtraction  = "team_extraction"
	PlayerProximity       = "proximity"
)

// PlayerRegistry is the field table of a player.
var PlayerRegistry = NewRegistry(
	FieldMapping{Member: PlayerName, Suffix: "blood_line_name", Kind: KindString},
	FieldMapping{Member: PlayerMMR, Suffix: "mmr", Kind: KindInteger},
	FieldMapping{Member: PlayerProfileID, Suffix: "profileid", Kind: KindInteger},
	FieldMapping{Member: PlayerKilledByMe, Suffix: "killedbyme", Kind: KindInteger},
	FieldMapping{Member: PlayerKilledMe, Suffix: "killedme", Kind: KindInteger},
	FieldMapping{Member: PlayerDownedByMe, Suffix: "downedbyme", Kind: KindInteger},
	FieldMapping{Member: PlayerDownedMe, Suffix: "downedme", Kind: KindInteger},
	FieldMapping{Member: PlayerBountyPickedUp, Suffix: "bountypickedup", Kind: KindInteger},
	FieldMapping{Member: PlayerBountyExtracted, Suffix: "bountyextracted", Kind: KindInteger},
	FieldMapping{Member: PlayerHadBounty, Suffix: "hadbounty", Kind: KindBoolean},
	FieldMapping{Member: PlayerIsPartner, Suffix: "ispartner", Kind: KindBoolean},
	FieldMapping{Member: PlayerIsSoulSurvivor, Suffix: "issoulsurvivor", Kind: KindBoolean},
	FieldMapping{Member: PlayerTeamExtraction, Suffix: "teamextraction", Kind: KindBoolean},
	FieldMapping{Member: PlayerProximity, Suffix: "proximity", Kind: KindBoolean},
)

// PlayerPrefix addresses player index player within team index team.
func PlayerPrefix(team, player int) string {
	return "MissionBagPlayer_" + strconv.Itoa(team) + "_" + strconv.Itoa(player)
}

// PlayerSchema maps entities.Player. Indices are (team, player).
var PlayerSchema = Schema[entities.Player]{
	Name:     "player",
	Registry: PlayerRegistry,
	Arity:    2,
	Prefix: func(indices ...int) string {
		return PlayerPrefix(indices[0], indices[1])
	},
	Encode: func(p entities.Player) Record {
		return Record{
			PlayerName:            StringValue(p.Name),
			PlayerMMR:             IntValue(p.MMR),
			PlayerProfileID:       IntValue(p.ProfileID),
			PlayerKilledByMe:      IntValue(p.KilledByMe),
			PlayerKilledMe:        IntValue(p.KilledMe),
			PlayerDownedByMe:      IntValue(p.DownedByMe),
			PlayerDownedMe:        IntValue(p.DownedMe),
			PlayerBountyPickedUp:  IntValue(p.BountyPickedUp),
			PlayerBountyExtracted: IntValue(p.BountyExtracted),
			PlayerHadBounty:       BoolValue(p.HadBounty),
			PlayerIsPartner:       BoolValue(p.IsPartner),
			PlayerIsSoulSurvivor:  BoolValue(p.IsSoulSurvivor),
			PlayerTeamExtraction:  BoolValue(p.TeamExtraction),
			PlayerProximity:       BoolValue(p.Proximity),
		}
	},
	Decode: func(r Record) entities.Player {
		return entities.Player{
			Name:            r.String(PlayerName),
			MMR:             r.Int(PlayerMMR),
			ProfileID:       r.Int(PlayerProfileID),
			KilledByMe:      r.Int(PlayerKilledByMe),
			KilledMe:        r.Int(PlayerKilledMe),
			DownedByMe:      r.Int(PlayerDownedByMe),
			DownedMe:        r.Int(PlayerDownedMe),
			BountyPickedUp:  r.Int(PlayerBountyPickedUp),
			BountyExtracted: r.Int(PlayerBountyExtracted),
			HadBounty:       r.Bool(PlayerHadBounty),
			IsPartner:       r.Bool(PlayerIsPartner),
			IsSoulSurvivor:  r.Bool(PlayerIsSoulSurvivor),
			TeamExtraction:  r.Bool(PlayerTeamExtraction),
			Proximity:       r.Bool(PlayerProximity),
		}
	},
}

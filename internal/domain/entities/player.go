package entities

// Player is one hunter within a team.
type Player struct {
	Name            string `json:"name"`
	MMR             int    `json:"mmr"`
	ProfileID       int    `json:"profile_id"`
	KilledByMe      int    `json:"killed_by_me"`
	KilledMe        int    `json:"killed_me"`
	DownedByMe      int    `json:"downed_by_me"`
	DownedMe        int    `json:"downed_me"`
	BountyPickedUp  int    `json:"bounty_picked_up"`
	BountyExtracted int    `json:"bounty_extracted"`
	HadBounty       bool   `json:"had_bounty"`
	IsPartner       bool   `json:"is_partner"`
	IsSoulSurvivor  bool   `json:"is_soul_survivor"`
	TeamExtraction  bool   `json:"team_extraction"`
	Proximity       bool   `json:"proximity"`
}

// FindPlayer returns the player with the given profile id.
func FindPlayer(teams []Team, profileID int) (Player, bool) {
	for _, t := range teams {
		for _, p := range t.Players {
			if p.ProfileID == profileID {
				return p, true
			}
		}
	}
	return Player{}, false
}

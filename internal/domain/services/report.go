package services

import (
	"github.com/ersonp/hunt-tracker/internal/domain/entities"
)

// Report is the per-match summary shown to the user.
type Report struct {
	// User is the player matching the configured profile id, nil if absent.
	User       *entities.Player
	OwnTeam    *entities.Team
	Teams      int
	Players    int
	KilledMe   []entities.Player
	KilledByMe []entities.Player
}

// ReportService builds match reports.
type ReportService struct{}

// NewReportService creates a new report service.
func NewReportService() *ReportService {
	return &ReportService{}
}

// Build summarizes teams from the point of view of profileID. Players appear
// in KilledMe or KilledByMe when the respective counter is non-zero; a
// player can appear in both.
func (s *ReportService) Build(teams []entities.Team, profileID int) Report {
	report := Report{
		Teams:      len(teams),
		Players:    entities.CountPlayers(teams),
		KilledMe:   []entities.Player{},
		KilledByMe: []entities.Player{},
	}

	if profileID != 0 {
		if user, ok := entities.FindPlayer(teams, profileID); ok {
			report.User = &user
		}
	}
	if own, ok := entities.OwnTeam(teams); ok {
		report.OwnTeam = &own
	}

	for _, p := range entities.AllPlayers(teams) {
		if report.User != nil && p.ProfileID == report.User.ProfileID {
			continue
		}
		if p.KilledMe > 0 {
			report.KilledMe = append(report.KilledMe, p)
		}
		if p.KilledByMe > 0 {
			report.KilledByMe = append(report.KilledByMe, p)
		}
	}

	return report
}

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/logging"
)

// renderReport prints a match report, painting kills green and deaths red.
func renderReport(w io.Writer, console *logging.ConsoleHandler, report services.Report) {
	var b strings.Builder

	fmt.Fprintf(&b, "Teams: %d, players: %d\n", report.Teams, report.Players)
	if report.OwnTeam != nil {
		fmt.Fprintf(&b, "Own team MMR: %s\n", entities.FormatMMR(report.OwnTeam.MMR))
	}
	if report.User != nil {
		fmt.Fprintf(&b, "You: %s %s\n", report.User.Name, entities.FormatMMR(report.User.MMR))
	}

	writePlayers(&b, console, "Killed by you", report.KilledByMe, logging.ColorGood, func(p entities.Player) int {
		return p.KilledByMe
	})
	writePlayers(&b, console, "Killed you", report.KilledMe, logging.ColorBad, func(p entities.Player) int {
		return p.KilledMe
	})

	fmt.Fprint(w, b.String())
}

func writePlayers(b *strings.Builder, console *logging.ConsoleHandler, title string, players []entities.Player, color lipgloss.Color, count func(entities.Player) int) {
	if len(players) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, p := range players {
		line := fmt.Sprintf("  %s %s x%d", p.Name, entities.FormatMMR(p.MMR), count(p))
		fmt.Fprintln(b, console.Paint(line, color))
	}
}

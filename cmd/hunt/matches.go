package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
)

func newMatchesCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List recorded matches",
		Long:  "Lists recorded matches from the match database, most recent first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.MatchHandler.List(cmd.Context(), limit, offset)
				if err != nil {
					return err
				}
				displayMatches(os.Stdout, result.Matches, result.Total)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", services.DefaultListLimit, "Maximum number of matches to display")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of matches to skip")

	return cmd
}

func displayMatches(w io.Writer, matches []entities.MatchSummary, total int) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No matches recorded.")
		return
	}

	fmt.Fprintf(w, "Showing %d of %d matches:\n\n", len(matches), total)
	for _, m := range matches {
		hash := m.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Fprintf(w, "%s  %s  teams=%d players=%d own=%s\n",
			m.RecordedAt.Local().Format("2006-01-02 15:04"),
			hash,
			m.TeamCount,
			m.PlayerCount,
			entities.FormatMMR(m.OwnTeamMMR),
		)
	}
}

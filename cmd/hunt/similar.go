package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/hunt-tracker/internal/application/handlers"
	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/domain/services"
)

func newSimilarCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "similar <hash>",
		Short: "Find lobbies similar to a recorded match",
		Long:  "Queries the lobby index for matches whose team MMRs are closest to the given one.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				result, err := d.MatchHandler.Similar(cmd.Context(), args[0], limit)
				if err != nil {
					return err
				}
				displaySimilar(os.Stdout, result)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", services.DefaultSimilarLimit, "Maximum number of lobbies to display")

	return cmd
}

func displaySimilar(w io.Writer, result *handlers.SimilarResult) {
	fmt.Fprintf(w, "Lobbies similar to %s (%d teams):\n\n", result.Match.ShortHash(), len(result.Match.Teams))
	if len(result.Lobbies) == 0 {
		fmt.Fprintln(w, "No similar lobbies found.")
		return
	}
	for i, l := range result.Lobbies {
		hash := l.Hash
		if len(hash) > 8 {
			hash = hash[:8]
		}
		fmt.Fprintf(w, "%d. %s  distance=%.3f  teams=%d own=%s  %s\n",
			i+1, hash, l.Score, l.TeamCount, entities.FormatMMR(l.OwnTeamMMR), l.RecordedAt)
	}
}

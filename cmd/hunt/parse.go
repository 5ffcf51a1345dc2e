package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/hunt-tracker/internal/application/handlers"
	"github.com/ersonp/hunt-tracker/internal/domain/attributes"
	"github.com/ersonp/hunt-tracker/internal/domain/entities"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

type parseFlags struct {
	format string
	output string
	bounds string
}

func newParseCmd() *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse an attributes file and print its teams",
		Long: "Parses an attributes file once and prints the teams and players it describes.\n" +
			"Without a file argument the configured or detected attributes file is used.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&flags.bounds, "bounds", "", "Override the bound strategy (probe, declared)")

	return cmd
}

func runParse(args []string, flags parseFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	cfg, _, _, err := loadConfig()
	if err != nil {
		return err
	}

	boundsName := cfg.Attributes.Bounds
	if flags.bounds != "" {
		boundsName = flags.bounds
	}
	bounds, err := attributes.ParseBoundStrategy(boundsName)
	if err != nil {
		return err
	}

	path := cfg.Attributes.Path
	if len(args) == 1 {
		path = args[0]
	}
	path, err = config.LocateAttributes(path, config.SteamLibraryRoots())
	if err != nil {
		return err
	}

	teams, err := handlers.ParseFile(path, bounds)
	if err != nil {
		return err
	}

	return writeOutput(flags.output, flags.format, teams)
}

func writeOutput(output, format string, teams []entities.Team) (err error) {
	var w io.Writer = os.Stdout
	var f *os.File

	if output != "" {
		f, err = os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatTeams(w, format, teams); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if output != "" {
		fmt.Printf("Wrote %d teams to %s\n", len(teams), output)
	}
	return nil
}

func formatTeams(w io.Writer, format string, teams []entities.Team) error {
	switch format {
	case "json":
		return formatJSON(w, teams)
	case "csv":
		return formatCSV(w, teams)
	case "markdown":
		return formatMarkdown(w, teams)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatJSON(w io.Writer, teams []entities.Team) error {
	if teams == nil {
		teams = []entities.Team{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(teams)
}

// formatCSV writes one row per player, prefixed with its team's fields.
func formatCSV(w io.Writer, teams []entities.Team) error {
	writer := csv.NewWriter(w)

	header := []string{
		"team", "team_mmr", "own_team", "is_invite", "handicap",
		"name", "profile_id", "mmr", "killed_by_me", "killed_me",
		"downed_by_me", "downed_me", "bounty_picked_up", "bounty_extracted",
		"had_bounty", "is_partner", "is_soul_survivor", "team_extraction", "proximity",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for i, t := range teams {
		for _, p := range t.Players {
			row := []string{
				strconv.Itoa(i),
				strconv.Itoa(t.MMR),
				strconv.FormatBool(t.OwnTeam),
				strconv.FormatBool(t.IsInvite),
				strconv.Itoa(t.Handicap),
				p.Name,
				strconv.Itoa(p.ProfileID),
				strconv.Itoa(p.MMR),
				strconv.Itoa(p.KilledByMe),
				strconv.Itoa(p.KilledMe),
				strconv.Itoa(p.DownedByMe),
				strconv.Itoa(p.DownedMe),
				strconv.Itoa(p.BountyPickedUp),
				strconv.Itoa(p.BountyExtracted),
				strconv.FormatBool(p.HadBounty),
				strconv.FormatBool(p.IsPartner),
				strconv.FormatBool(p.IsSoulSurvivor),
				strconv.FormatBool(p.TeamExtraction),
				strconv.FormatBool(p.Proximity),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatMarkdown(w io.Writer, teams []entities.Team) error {
	if _, err := fmt.Fprintf(w, "# Match\n\nTeams: %d, players: %d\n", len(teams), entities.CountPlayers(teams)); err != nil {
		return err
	}

	for i, t := range teams {
		title := fmt.Sprintf("Team %d", i)
		if t.OwnTeam {
			title += " (own)"
		}
		if _, err := fmt.Fprintf(w, "\n## %s: %s\n\n", title, entities.FormatMMR(t.MMR)); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "| Name | MMR | Killed by me | Killed me | Bounty |\n"); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "|------|-----|--------------|-----------|--------|\n"); err != nil {
			return err
		}
		for _, p := range t.Players {
			if _, err := fmt.Fprintf(w, "| %s | %s | %d | %d | %d/%d |\n",
				escapeMarkdown(p.Name),
				entities.FormatMMR(p.MMR),
				p.KilledByMe,
				p.KilledMe,
				p.BountyPickedUp,
				p.BountyExtracted,
			); err != nil {
				return err
			}
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

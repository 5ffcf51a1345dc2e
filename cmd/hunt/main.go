// Package main provides the entry point for the hunt CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version         = "0.1.0-dev"
	globalConfigDir string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:           "hunt",
		Short:         "Records Hunt: Showdown matches from the game's attributes file",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&globalConfigDir, "config-dir", "", "Directory containing .hunt (default: current directory)")

	rootCmd.AddCommand(
		newInitCmd(),
		newWatchCmd(),
		newParseCmd(),
		newMatchesCmd(),
		newSimilarCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

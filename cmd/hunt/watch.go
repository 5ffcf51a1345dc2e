package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/hunt-tracker/internal/application/handlers"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
	"github.com/ersonp/hunt-tracker/internal/infrastructure/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Record matches as the game writes them",
		Long: "Watches the attributes file and records every new match it describes.\n" +
			"Press Ctrl-C to stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				return runWatch(cmd.Context(), d)
			})
		},
	}
}

func runWatch(ctx context.Context, d *Deps) error {
	path, err := config.LocateAttributes(d.Config.Attributes.Path, config.SteamLibraryRoots())
	if err != nil {
		return err
	}

	w, err := watcher.New(path, d.Config.Watch)
	if err != nil {
		return err
	}

	d.Logger.Info("watching attributes file", "path", w.Path(), "bounds", d.Bounds)

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Run(ctx)
	}()

	// Single consumer: the snapshot handler is not safe for concurrent use
	for ev := range w.Events() {
		result, err := d.SnapshotHandler.HandleFile(ctx, ev.Path)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			d.Logger.Error("handling attributes file failed", "error", err)
			continue
		}
		logSnapshot(os.Stdout, d, result)
	}

	if err := <-watchErr; err != nil {
		return fmt.Errorf("watching attributes file: %w", err)
	}
	d.Logger.Info("stopped watching", "matches", d.SnapshotHandler.Seen())
	return nil
}

// logSnapshot logs the outcome of one snapshot and prints the report of a
// match seen for the first time.
func logSnapshot(w io.Writer, d *Deps, result *handlers.SnapshotResult) {
	switch result.Skipped {
	case handlers.SkipMalformed:
		d.Logger.Debug("attributes file not readable yet", "error", result.Err)
	case handlers.SkipInvalid:
		d.Logger.Warn("attributes file skipped", "error", result.Err)
	case handlers.SkipEmpty:
		d.Logger.Warn("no teams in attributes file")
	case handlers.SkipSeen:
		d.Logger.Debug("match already handled")
	default:
		rec := result.Record
		if rec.Duplicate || rec.AlreadyArchived {
			d.Logger.Info("match already recorded",
				"hash", rec.Match.ShortHash(),
				"archive", rec.Match.ArchivePath,
			)
			return
		}
		d.Logger.Info("match recorded", "hash", rec.Match.ShortHash(), "archive", rec.Match.ArchivePath)

		if result.Report.User == nil && d.Config.ProfileID != 0 {
			d.Logger.Warn("user not found in match", "profile_id", d.Config.ProfileID)
		}
		renderReport(w, d.Console, result.Report)
	}
}

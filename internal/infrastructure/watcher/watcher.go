// Package watcher reports changes to a single file.
//
// On Linux the parent directory is watched with inotify, which catches both
// in-place writes and atomic renames. Elsewhere the file is polled.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

const (
	defaultDebounce     = 50 * time.Millisecond
	defaultPollInterval = time.Second
)

// Event signals that the watched file may have new content.
type Event struct {
	Path string
	Time time.Time
}

// Watcher emits an Event whenever the watched file is written.
// Bursts of writes are coalesced; a slow consumer sees at most one pending
// event.
type Watcher struct {
	path     string
	dir      string
	name     string
	debounce time.Duration
	interval time.Duration
	events   chan Event
}

// New creates a watcher for path. The file itself does not need to exist
// yet, but its directory does.
func New(path string, cfg config.WatchConfig) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving watch path: %w", err)
	}

	dir := filepath.Dir(abs)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory %s is not a directory", dir)
	}

	w := &Watcher{
		path:     abs,
		dir:      dir,
		name:     filepath.Base(abs),
		debounce: cfg.Debounce,
		interval: cfg.PollInterval,
		events:   make(chan Event, 1),
	}
	if w.debounce <= 0 {
		w.debounce = defaultDebounce
	}
	if w.interval <= 0 {
		w.interval = defaultPollInterval
	}
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the channel events are delivered on. It is closed when
// Run returns.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Run watches until ctx is done. If the file exists once watching has
// started, an initial event is emitted so the current content is not missed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.events)

	err := w.run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// notify queues an event unless one is already pending.
func (w *Watcher) notify() {
	select {
	case w.events <- Event{Path: w.path, Time: time.Now()}:
	default:
	}
}

func (w *Watcher) notifyIfExists() {
	if _, err := os.Stat(w.path); err == nil {
		w.notify()
	}
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

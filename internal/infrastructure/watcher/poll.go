package watcher

import (
	"context"
	"os"
	"time"
)

// fileState is what polling compares between ticks.
type fileState struct {
	exists  bool
	size    int64
	modTime time.Time
}

func statFile(path string) fileState {
	info, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{exists: true, size: info.Size(), modTime: info.ModTime()}
}

// poll compares the file's size and modification time every interval.
func (w *Watcher) poll(ctx context.Context) error {
	last := statFile(w.path)
	if last.exists {
		w.notify()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		current := statFile(w.path)
		if current != last && current.exists {
			w.notify()
		}
		last = current
	}
}

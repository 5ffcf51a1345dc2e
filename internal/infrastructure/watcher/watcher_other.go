//go:build !linux

package watcher

import "context"

func (w *Watcher) run(ctx context.Context) error {
	return w.poll(ctx)
}

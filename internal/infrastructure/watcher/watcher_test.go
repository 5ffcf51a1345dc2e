package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/hunt-tracker/internal/infrastructure/config"
)

const waitTimeout = 3 * time.Second

func waitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults", func(t *testing.T) {
		w, err := New(filepath.Join(dir, "attributes.xml"), config.WatchConfig{})
		require.NoError(t, err)
		assert.Equal(t, defaultDebounce, w.debounce)
		assert.Equal(t, defaultPollInterval, w.interval)
		assert.Equal(t, "attributes.xml", w.name)
		assert.True(t, filepath.IsAbs(w.Path()))
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := New(filepath.Join(dir, "nope", "attributes.xml"), config.WatchConfig{})
		require.Error(t, err)
	})

	t.Run("parent is a file", func(t *testing.T) {
		file := filepath.Join(dir, "plain")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		_, err := New(filepath.Join(file, "attributes.xml"), config.WatchConfig{})
		require.Error(t, err)
	})
}

func TestWatcher_Poll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attributes.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Attributes/>"), 0o644))

	w, err := New(path, config.WatchConfig{PollInterval: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		defer close(w.events)
		done <- w.poll(ctx)
	}()

	ev := waitEvent(t, w.Events())
	assert.Equal(t, w.Path(), ev.Path)

	require.NoError(t, os.WriteFile(path, []byte(`<Attributes a="1"/>`), 0o644))
	waitEvent(t, w.Events())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_PollIgnoresMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attributes.xml")

	w, err := New(path, config.WatchConfig{PollInterval: 10 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, w.poll(ctx), context.DeadlineExceeded)

	select {
	case <-w.Events():
		t.Fatal("no event expected for a missing file")
	default:
	}
}

func TestWatcher_RunDetectsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attributes.xml")
	require.NoError(t, os.WriteFile(path, []byte("<Attributes/>"), 0o644))

	w, err := New(path, config.WatchConfig{
		Debounce:     5 * time.Millisecond,
		PollInterval: 10 * time.Millisecond,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Initial event for the existing file
	waitEvent(t, w.Events())

	// Atomic replace
	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(`<Attributes MissionBagNumTeams="0"/>`), 0o644))
	require.NoError(t, os.Rename(tmp, path))
	waitEvent(t, w.Events())

	cancel()
	require.NoError(t, <-done)

	_, ok := <-w.Events()
	assert.False(t, ok, "events channel is closed after Run returns")
}

func TestWatcher_NotifyCoalesces(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "attributes.xml"), config.WatchConfig{})
	require.NoError(t, err)

	w.notify()
	w.notify()
	w.notify()

	assert.Len(t, w.events, 1)
}

package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/releasedesk/internal/pubsub"
	"github.com/zjrosen/releasedesk/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan pubsub.Event[string] {
	t.Helper()

	w, err := watcher.New(watcher.Config{Path: path, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start())
	return events
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "ui: {}\n")

	events := startWatcher(t, path)

	for i := 0; i < 10; i++ {
		writeFile(t, path, fmt.Sprintf("ui:\n  show_details: %v\n", i%2 == 0))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-events:
		require.Equal(t, pubsub.ReloadedEvent, ev.Type)
		require.Equal(t, path, ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("expected reload event")
	}

	select {
	case <-events:
		t.Fatal("unexpected second event")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	other := filepath.Join(dir, "notes.txt")
	writeFile(t, path, "ui: {}\n")
	writeFile(t, other, "initial")

	events := startWatcher(t, path)

	writeFile(t, other, "changed")

	select {
	case <-events:
		t.Fatal("unexpected event for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "ui: {}\n")

	events := startWatcher(t, path)

	tmp := filepath.Join(dir, ".config.yaml.tmp")
	writeFile(t, tmp, "ui:\n  show_details: true\n")
	require.NoError(t, os.Rename(tmp, path))

	select {
	case ev := <-events:
		require.Equal(t, path, ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("expected reload event after rename")
	}
}

func TestWatcher_StopClosesBroker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "ui: {}\n")

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	events := w.Broker().Subscribe(context.Background())
	require.NoError(t, w.Start())

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	_, ok := <-events
	require.False(t, ok)
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "config.yaml")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}

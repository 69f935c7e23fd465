package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForEvent(t *testing.T, evCh <-chan string) string {
	t.Helper()
	select {
	case p, ok := <-evCh:
		require.True(t, ok, "event channel closed before an event arrived")
		return p
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a watcher event")
		return ""
	}
}

func waitForClose(t *testing.T, evCh <-chan string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-evCh:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for the event channel to close")
		}
	}
}

func TestStartWatcher_EmitsDebouncedEvent(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Root: dir, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)

	target := filepath.Join(dir, "nota.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	assert.Equal(t, target, waitForEvent(t, evCh))
}

func TestStartWatcher_ShutdownDuringDebounce(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	evCh, _, err := StartWatcher(ctx, WatchConfig{Root: dir, Debounce: 200 * time.Millisecond})
	require.NoError(t, err)

	// land a document so a debounce flush is armed, then cancel before it fires
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nota.pdf"), []byte("x"), 0o644))
	time.Sleep(50 * time.Millisecond)
	cancel()

	waitForClose(t, evCh)
	// let the debounce window elapse after shutdown; a flush escaping the
	// watcher goroutine would send on the closed channel here
	time.Sleep(300 * time.Millisecond)
}

func TestStartWatcher_InitialScanEmitsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "existente.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Root: dir, InitialScan: true})
	require.NoError(t, err)

	assert.Equal(t, target, waitForEvent(t, evCh))
}

func TestStartWatcher_IgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := StartWatcher(ctx, WatchConfig{Root: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "nota.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))

	assert.Equal(t, target, waitForEvent(t, evCh))
}

func TestStartWatcher_EmptyRoot(t *testing.T) {
	_, _, err := StartWatcher(context.Background(), WatchConfig{})
	require.Error(t, err)
}

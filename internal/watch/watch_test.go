package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()

	var calls atomic.Int32
	changed := make(chan struct{}, 10)
	w, err := New(Config{
		Dir:      dir,
		Debounce: 50 * time.Millisecond,
		Match:    func(path string) bool { return strings.HasSuffix(path, ".yaml") },
		OnChange: func() error {
			calls.Add(1)
			changed <- struct{}{}
			return nil
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := range 5 {
		path := filepath.Join(dir, "sunset.yaml")
		require.NoError(t, os.WriteFile(path, []byte("angle: "+string(rune('0'+i))), 0644))
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("OnChange was not called")
	}

	// Unmatched files do not trigger a rebuild.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(200 * time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes triggers one callback")
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	changed := make(chan struct{}, 10)
	w, err := New(Config{
		Dir:      dir,
		Debounce: 20 * time.Millisecond,
		Match:    func(path string) bool { return strings.HasSuffix(path, ".json") },
		OnChange: func() error {
			changed <- struct{}{}
			return nil
		},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	sub := filepath.Join(dir, "brand")
	require.NoError(t, os.Mkdir(sub, 0755))
	// Give the watcher time to register the new directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "mint.json"), []byte("{}"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("change in new subdirectory was not seen")
	}
}

func TestWatcher_ReportsOnChangeErrors(t *testing.T) {
	dir := t.TempDir()

	errs := make(chan error, 1)
	w, err := New(Config{
		Dir:      dir,
		Debounce: 10 * time.Millisecond,
		OnChange: func() error { return assert.AnError },
		OnError:  func(err error) { errs <- err },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("x: 1"), 0644))

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, assert.AnError)
	case <-time.After(5 * time.Second):
		t.Fatal("OnError was not called")
	}
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(Config{Dir: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

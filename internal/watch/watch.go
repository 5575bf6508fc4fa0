// Package watch rebuilds output when files under a directory change.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the default debounce interval for file watch events.
const DefaultDebounce = 300 * time.Millisecond

// Config configures a Watcher.
type Config struct {
	Dir      string
	Debounce time.Duration
	// Match filters events by path; nil accepts every file.
	Match func(path string) bool
	// OnChange runs once per burst of matching events.
	OnChange func() error
	// OnError receives watcher and OnChange errors.
	OnError func(error)
}

// Watcher monitors a directory tree for changes.
type Watcher struct {
	cfg     Config
	watcher *fsnotify.Watcher
}

// New watches cfg.Dir and every directory below it. Directories created
// later are added as they appear.
func New(cfg Config) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		fw.Close()
		return nil, err
	}

	return &Watcher{cfg: cfg, watcher: fw}, nil
}

// Run delivers debounced change callbacks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				// New subdirectories need their own watch.
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			// Only react to write/create/rename/remove events (covers atomic saves)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if w.cfg.Match != nil && !w.cfg.Match(event.Name) {
				continue
			}

			// Debounce: reset the timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.cfg.Debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			if w.cfg.OnChange != nil {
				if err := w.cfg.OnChange(); err != nil {
					w.report(err)
				}
			}
			debounceTimer = nil
			debounceCh = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *Watcher) report(err error) {
	if w.cfg.OnError != nil {
		w.cfg.OnError(err)
	}
}

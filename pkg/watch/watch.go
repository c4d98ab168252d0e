package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// DefaultDebounce coalesces the burst of events an editor emits on save
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher reports changes to a single file. It watches the parent
// directory so that editors replacing the file by rename are still seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	w        *fsnotify.Watcher
	logger   core.Logger
}

// NewFileWatcher starts watching path. A non-positive debounce uses DefaultDebounce.
func NewFileWatcher(path string, debounce time.Duration, logger core.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{path: abs, debounce: debounce, w: w, logger: logger}, nil
}

// Path returns the absolute path being watched
func (fw *FileWatcher) Path() string {
	return fw.path
}

// relevant reports whether ev changes the watched file's contents
func (fw *FileWatcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != fw.path {
		return false
	}
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Run calls onChange once per burst of changes until ctx is done or the watcher is closed.
// onChange runs on the Run goroutine, so events during a slow callback are coalesced.
func (fw *FileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.w.Events:
			if !ok {
				return nil
			}
			if !fw.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(fw.debounce)
			} else {
				timer.Reset(fw.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange(fw.path)
		case err, ok := <-fw.w.Errors:
			if !ok {
				return nil
			}
			if fw.logger != nil {
				fw.logger.Printf("Warning: watch error: %v\n", err)
			}
		}
	}
}

// Close stops watching
func (fw *FileWatcher) Close() error {
	return fw.w.Close()
}

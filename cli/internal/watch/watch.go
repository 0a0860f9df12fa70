// Package watch re-runs a callback when a schema file changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/satishbabariya/prisma-cascade/internal/debug"
)

// DefaultDebounce is how long a burst of writes is collapsed into one change.
const DefaultDebounce = 300 * time.Millisecond

// Watcher watches a single file. Editors that save by renaming a temporary
// file over the original are handled by watching the parent directory.
type Watcher struct {
	file     string
	onChange func() error
	watcher  *fsnotify.Watcher
	// Debounce may be changed before Run.
	Debounce time.Duration
}

// New creates a watcher for file. onChange errors are logged and do not stop
// the watcher.
func New(file string, onChange func() error) (*Watcher, error) {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return &Watcher{
		file:     absPath,
		onChange: onChange,
		watcher:  watcher,
		Debounce: DefaultDebounce,
	}, nil
}

// Run blocks until ctx is done or the underlying watcher fails, calling
// onChange once per settled change of the file.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.Debounce)
	timer.Stop()
	var settled <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.Debounce)
			settled = timer.C

		case <-settled:
			settled = nil
			debug.Debug("Schema changed", "path", w.file)
			if err := w.onChange(); err != nil {
				debug.Warn("Watch callback failed", "path", w.file, "error", err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", w.file, err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	path, err := filepath.Abs(event.Name)
	return err == nil && path == w.file
}

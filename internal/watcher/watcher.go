// Package watcher notifies about changes to the store file.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce limits how often rapid successive changes fire.
const DefaultDebounce = 500 * time.Millisecond

// Watcher watches a single file for changes.
type Watcher struct {
	path     string
	onChange func()
	onError  func(error)
	debounce time.Duration
}

// New creates a watcher that calls onChange when the file at path is
// written or replaced.
func New(path string, onChange func()) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		onError:  func(error) {},
		debounce: DefaultDebounce,
	}
}

// WithDebounce sets the debounce duration.
func (w *Watcher) WithDebounce(d time.Duration) *Watcher {
	w.debounce = d
	return w
}

// WithErrorHandler sets the handler for non-fatal watch errors.
func (w *Watcher) WithErrorHandler(handler func(error)) *Watcher {
	w.onError = handler
	return w
}

// Watch blocks until the context is cancelled. The parent directory is
// watched instead of the file itself, so atomic replacements where a
// temp file is renamed over the store keep being seen.
func (w *Watcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	filename := filepath.Base(w.path)

	if err := watcher.Add(dir); err != nil {
		return err
	}

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only events for our file are relevant
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// Debounce rapid changes
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.onError(err)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

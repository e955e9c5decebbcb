package ledger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher notifies on changes to a ledger file. It watches the parent
// directory rather than the file itself because atomic writes replace the
// file by rename, which drops a direct file watch.
type Watcher struct {
	store   *Store
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the store's ledger file. The file does
// not need to exist yet.
func NewWatcher(store *Store) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(store.Path())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching ledger directory: %w", err)
	}

	return &Watcher{store: store, watcher: fsw}, nil
}

// Watch invokes fn with the freshly loaded ledger each time the file
// changes, after an initial invocation with the current state. It returns
// when the context is cancelled. Rapid successive events are debounced.
func (w *Watcher) Watch(ctx context.Context, fn func(*Ledger) error) error {
	l, err := w.store.Load()
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}

	const debounce = 100 * time.Millisecond
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			if event.Name != w.store.Path() {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher closed")
			}
			return fmt.Errorf("watching ledger: %w", err)
		case <-fire:
			l, err := w.store.Load()
			if err != nil {
				return err
			}
			if err := fn(l); err != nil {
				return err
			}
		}
	}
}

// Close releases the underlying file system watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

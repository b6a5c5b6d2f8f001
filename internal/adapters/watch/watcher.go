// Package watch reports changes made to the bookmark database by other
// processes, such as the CLI or the MCP server writing while the TUI is open.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 150 * time.Millisecond

// Watcher watches one database file. SQLite in WAL mode writes the -wal file
// first, so both are watched through their directory.
type Watcher struct {
	fs       *fsnotify.Watcher
	path     string
	names    map[string]bool
	logger   *zap.Logger
	debounce time.Duration
}

// Option configures a Watcher
type Option func(*Watcher)

// WithLogger sets the watcher logger
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets how long a burst of writes must be quiet before it is reported
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// New starts watching the directory holding the database at path
func New(path string, opts ...Option) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	base := filepath.Base(path)
	w := &Watcher{
		fs:       fs,
		path:     path,
		names:    map[string]bool{base: true, base + "-wal": true},
		logger:   zap.NewNop(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	// Watch the directory so atomic replaces are seen too
	if err := fs.Add(filepath.Dir(path)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}
	return w, nil
}

// Run calls onChange after each burst of writes to the database. It blocks
// until ctx is done or the watcher is closed. onChange runs on its own goroutine.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	w.logger.Info("watching database", zap.String("path", w.path))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.names[filepath.Base(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				w.logger.Debug("database changed", zap.String("path", w.path))
				onChange()
			})
			mu.Unlock()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// Package workspace ties one document to its store, editor and undo history.
// Every outer surface (terminal UI, CLI, MCP server) works through a Workspace.
package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// Workspace is safe for use from several goroutines only through With; the
// other methods assume the caller already serializes access.
type Workspace struct {
	mu      sync.Mutex
	store   ports.DocumentStore
	editor  *commands.Editor
	history *commands.History
	logger  *zap.Logger

	// open/close and icon changes are saved but are not undoable
	viewDirty bool

	// store save time when the document was last loaded or saved
	stamp time.Time
}

// Option configures a Workspace
type Option func(*config)

type config struct {
	logger    *zap.Logger
	undoLimit int
}

// WithLogger sets the logger used by the workspace, its editor and history
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUndoLimit caps the undo history
func WithUndoLimit(n int) Option {
	return func(c *config) {
		c.undoLimit = n
	}
}

// Open loads the stored document
func Open(ctx context.Context, store ports.DocumentStore, opts ...Option) (*Workspace, error) {
	cfg := config{logger: zap.NewNop(), undoLimit: commands.DefaultHistoryLimit}
	for _, opt := range opts {
		opt(&cfg)
	}

	doc, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}

	w := &Workspace{
		store:   store,
		editor:  commands.NewEditor(doc, commands.WithEditorLogger(cfg.logger)),
		history: commands.NewHistory(commands.WithLimit(cfg.undoLimit), commands.WithLogger(cfg.logger)),
		logger:  cfg.logger,
	}
	w.stamp = w.savedAt(ctx)
	return w, nil
}

func (w *Workspace) savedAt(ctx context.Context) time.Time {
	s, ok := w.store.(ports.SaveStamper)
	if !ok {
		return time.Time{}
	}
	at, err := s.SavedAt(ctx)
	if err != nil {
		w.logger.Warn("failed to read save time", zap.Error(err))
		return time.Time{}
	}
	return at
}

// Stale reports whether another writer saved the store since this workspace
// last loaded or saved it. Stores that keep no save time are never stale.
func (w *Workspace) Stale(ctx context.Context) bool {
	at := w.savedAt(ctx)
	return at.After(w.stamp)
}

// With runs fn while holding the workspace lock
func (w *Workspace) With(fn func(w *Workspace) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(w)
}

// Editor returns the editor that owns the document
func (w *Workspace) Editor() *commands.Editor {
	return w.editor
}

// History returns the undo history
func (w *Workspace) History() *commands.History {
	return w.history
}

// Document returns the live document
func (w *Workspace) Document() *domain.Document {
	return w.editor.Document()
}

// Execute runs cmd through the history
func (w *Workspace) Execute(cmd commands.Command) error {
	return w.history.Execute(cmd)
}

// Undo reverses the last command and returns its name
func (w *Workspace) Undo() (string, error) {
	name := w.history.UndoName()
	if err := w.history.Undo(); err != nil {
		return "", err
	}
	return name, nil
}

// Redo re-applies the last undone command and returns its name
func (w *Workspace) Redo() (string, error) {
	name := w.history.RedoName()
	if err := w.history.Redo(); err != nil {
		return "", err
	}
	return name, nil
}

// SetIcon stores an icon found for bookmark n. Like SetOpen the change is
// saved but is not undoable, so it leaves the history and its redo tail
// alone. Nodes that have left the document are ignored.
func (w *Workspace) SetIcon(n *domain.Node, icon string) error {
	a, err := w.Document().AddressOf(n)
	if err != nil || n.Icon == icon {
		return nil
	}
	if n.Kind != domain.KindBookmark {
		return &domain.AddressError{Op: "set icon", Address: a, Err: domain.ErrStructuralViolation}
	}
	err = w.editor.Update(a, func(n *domain.Node) error {
		n.Icon = icon
		return nil
	})
	if err != nil {
		return err
	}
	w.viewDirty = true
	return nil
}

// SetOpen expands or collapses a folder. The change is saved but cannot be undone.
func (w *Workspace) SetOpen(a domain.Address, open bool) error {
	n, err := w.Document().ResolveFolder(a)
	if err != nil {
		return err
	}
	if n.Open == open {
		return nil
	}
	if err := w.editor.SetOpen(a, open); err != nil {
		return err
	}
	w.viewDirty = true
	return nil
}

// Dirty reports whether there are unsaved changes
func (w *Workspace) Dirty() bool {
	return w.history.Dirty() || w.viewDirty
}

// Save writes the document when it has unsaved changes
func (w *Workspace) Save(ctx context.Context) error {
	if !w.Dirty() {
		return nil
	}
	if err := w.store.Save(ctx, w.Document()); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	w.history.MarkClean()
	w.viewDirty = false
	w.stamp = w.savedAt(ctx)
	return nil
}

// Reload replaces the document with the stored one and drops the history.
// Observers see a reset.
func (w *Workspace) Reload(ctx context.Context) error {
	doc, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload bookmarks: %w", err)
	}
	w.editor.Replace(doc)
	w.history.Clear()
	w.viewDirty = false
	w.stamp = w.savedAt(ctx)
	w.logger.Info("reloaded document from store")
	return nil
}

// Close closes the store without saving
func (w *Workspace) Close() error {
	return w.store.Close()
}

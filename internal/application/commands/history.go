package commands

import (
	"fmt"

	"go.uber.org/zap"

	"bookmarked/internal/application"
)

// DefaultHistoryLimit is the number of commands kept when no limit is configured
const DefaultHistoryLimit = 100

// History sequences executed commands for undo and redo and tracks whether the
// document differs from its last saved state.
type History struct {
	entries []Command
	pos     int // number of entries currently applied
	clean   int // pos at the last save, -1 when that state is no longer reachable
	limit   int
	dirty   bool

	listeners []func(dirty bool)
	logger    *zap.Logger
}

// HistoryOption configures a History
type HistoryOption func(*History)

// WithLimit caps the number of retained commands. Zero or less means unlimited.
func WithLimit(n int) HistoryOption {
	return func(h *History) {
		h.limit = n
	}
}

// WithLogger sets the history logger
func WithLogger(l *zap.Logger) HistoryOption {
	return func(h *History) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHistory creates an empty, clean history
func NewHistory(opts ...HistoryOption) *History {
	h := &History{
		limit:  DefaultHistoryLimit,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute runs cmd and records it. Nothing is recorded if it fails.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Execute(); err != nil {
		h.logger.Warn("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		return &application.CommandError{Command: cmd.Name(), Address: cmd.AffectedAncestor(), Err: err}
	}
	h.logger.Debug("executed", zap.String("command", cmd.Name()), zap.Stringer("affected", cmd.AffectedAncestor()))
	h.Add(cmd)
	return nil
}

// Add records a command that has already been executed. The redo tail is discarded.
func (h *History) Add(cmd Command) {
	if h.clean > h.pos {
		h.clean = -1
	}
	h.entries = append(h.entries[:h.pos], cmd)
	h.pos++

	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([]Command(nil), h.entries[drop:]...)
		h.pos -= drop
		if h.clean >= 0 {
			h.clean -= drop
			if h.clean < 0 {
				h.clean = -1
			}
		}
	}
	h.notify()
}

// Undo reverses the most recent applied command
func (h *History) Undo() error {
	if h.pos == 0 {
		return application.ErrNothingToUndo
	}
	cmd := h.entries[h.pos-1]
	if err := cmd.Unexecute(); err != nil {
		return &application.CommandError{Command: fmt.Sprintf("undo %s", cmd.Name()), Err: err}
	}
	h.pos--
	h.logger.Debug("undone", zap.String("command", cmd.Name()))
	h.notify()
	return nil
}

// Redo re-applies the most recently undone command
func (h *History) Redo() error {
	if h.pos == len(h.entries) {
		return application.ErrNothingToRedo
	}
	cmd := h.entries[h.pos]
	if err := cmd.Execute(); err != nil {
		return &application.CommandError{Command: fmt.Sprintf("redo %s", cmd.Name()), Err: err}
	}
	h.pos++
	h.logger.Debug("redone", zap.String("command", cmd.Name()))
	h.notify()
	return nil
}

// CanUndo reports whether Undo has something to do
func (h *History) CanUndo() bool {
	return h.pos > 0
}

// CanRedo reports whether Redo has something to do
func (h *History) CanRedo() bool {
	return h.pos < len(h.entries)
}

// UndoName returns the name of the command Undo would reverse, or ""
func (h *History) UndoName() string {
	if !h.CanUndo() {
		return ""
	}
	return h.entries[h.pos-1].Name()
}

// RedoName returns the name of the command Redo would re-apply, or ""
func (h *History) RedoName() string {
	if !h.CanRedo() {
		return ""
	}
	return h.entries[h.pos].Name()
}

// Len returns the number of retained commands
func (h *History) Len() int {
	return len(h.entries)
}

// MarkClean records the current state as saved
func (h *History) MarkClean() {
	h.clean = h.pos
	h.notify()
}

// Dirty reports whether the document differs from its last saved state
func (h *History) Dirty() bool {
	return h.pos != h.clean
}

// Clear drops all commands and marks the current state clean
func (h *History) Clear() {
	h.entries = nil
	h.pos = 0
	h.clean = 0
	h.notify()
}

// OnDirtyChanged registers fn to be called whenever Dirty changes value
func (h *History) OnDirtyChanged(fn func(dirty bool)) {
	h.listeners = append(h.listeners, fn)
}

func (h *History) notify() {
	d := h.Dirty()
	if d == h.dirty {
		return
	}
	h.dirty = d
	for _, fn := range h.listeners {
		fn(d)
	}
}

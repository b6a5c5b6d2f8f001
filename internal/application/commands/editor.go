package commands

import (
	"slices"

	"go.uber.org/zap"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// Editor is the only path by which a Document is mutated. Each structural
// primitive is validated first and then bracketed by observer notifications,
// so no observer can read the tree between the document edit and its own rebase.
type Editor struct {
	doc       *domain.Document
	observers []ports.TreeObserver
	logger    *zap.Logger
}

// EditorOption configures an Editor
type EditorOption func(*Editor)

// WithObserver registers an observer at construction time
func WithObserver(o ports.TreeObserver) EditorOption {
	return func(e *Editor) {
		e.observers = append(e.observers, o)
	}
}

// WithEditorLogger sets the logger used for structural edits
func WithEditorLogger(l *zap.Logger) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEditor creates an editor over doc
func NewEditor(doc *domain.Document, opts ...EditorOption) *Editor {
	e := &Editor{
		doc:    doc,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the edited document. Callers must treat it as read-only.
func (e *Editor) Document() *domain.Document {
	return e.doc
}

// AddObserver registers an observer
func (e *Editor) AddObserver(o ports.TreeObserver) {
	e.observers = append(e.observers, o)
}

// RemoveObserver unregisters an observer
func (e *Editor) RemoveObserver(o ports.TreeObserver) {
	e.observers = slices.DeleteFunc(e.observers, func(x ports.TreeObserver) bool {
		return x == o
	})
}

// Insert places n at pos among the children of the folder at parent
func (e *Editor) Insert(parent domain.Address, pos int, n *domain.Node) error {
	if err := e.doc.ValidateInsert(parent, pos); err != nil {
		return err
	}

	for _, o := range e.observers {
		o.BeginInsert(parent, pos, pos)
	}
	err := e.doc.InsertChild(parent, pos, n)
	for _, o := range e.observers {
		o.EndInsert()
	}

	e.logger.Debug("insert",
		zap.Stringer("parent", parent),
		zap.Int("pos", pos),
		zap.Stringer("kind", n.Kind),
		zap.Error(err),
	)
	return err
}

// Remove detaches the node at a and returns its subtree
func (e *Editor) Remove(a domain.Address) (*domain.Node, error) {
	if err := e.doc.ValidateRemove(a); err != nil {
		return nil, err
	}

	parent, pos := a.Parent(), a.Position()
	for _, o := range e.observers {
		o.BeginRemove(parent, pos, pos)
	}
	n, err := e.doc.RemoveChild(a)
	for _, o := range e.observers {
		o.EndRemove()
	}

	e.logger.Debug("remove", zap.Stringer("address", a), zap.Error(err))
	return n, err
}

// Move relocates the node at from into the folder at toParent. toPos is counted
// after the node has been taken out of its old position.
func (e *Editor) Move(from, toParent domain.Address, toPos int) error {
	if err := e.doc.ValidateMove(from, toParent, toPos); err != nil {
		return err
	}

	for _, o := range e.observers {
		o.BeginMove(from.Parent(), from.Position(), toParent, toPos)
	}
	err := e.doc.MoveChild(from, toParent, toPos)
	for _, o := range e.observers {
		o.EndMove()
	}

	e.logger.Debug("move",
		zap.Stringer("from", from),
		zap.Stringer("to_parent", toParent),
		zap.Int("to_pos", toPos),
		zap.Error(err),
	)
	return err
}

// Update applies fn to the node at a and reports the change to observers
func (e *Editor) Update(a domain.Address, fn func(n *domain.Node) error) error {
	n, err := e.doc.Resolve(a)
	if err != nil {
		return err
	}
	if err := fn(n); err != nil {
		return err
	}
	e.Notify(a)
	return nil
}

// SetOpen records a folder's expanded state. This is view state kept in the
// document for persistence, and is not undo-tracked.
func (e *Editor) SetOpen(a domain.Address, open bool) error {
	n, err := e.doc.ResolveFolder(a)
	if err != nil {
		return err
	}
	if n.Open == open {
		return nil
	}
	n.Open = open
	e.Notify(a)
	return nil
}

// Notify tells observers that the node at a changed in place
func (e *Editor) Notify(a domain.Address) {
	for _, o := range e.observers {
		o.Changed(a)
	}
}

// Replace swaps in a new document, e.g. after loading from a store
func (e *Editor) Replace(doc *domain.Document) {
	e.doc = doc
	for _, o := range e.observers {
		o.Reset()
	}
}

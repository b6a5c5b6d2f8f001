package iteration

import "bookmarked/internal/domain"

// Saved is a node's status as it was before an iterator overwrote it
type Saved struct {
	Text string
	Set  bool
}

// StatusBoard holds transient display status per node. It is not part of the
// document and never undo-tracked. It is only used from the scheduler's flow.
type StatusBoard struct {
	status    map[*domain.Node]string
	listeners []func(*domain.Node)
}

// NewStatusBoard creates an empty board
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{status: make(map[*domain.Node]string)}
}

// Status returns the text for n, or ""
func (b *StatusBoard) Status(n *domain.Node) string {
	return b.status[n]
}

// Get returns the text for n and whether any is set
func (b *StatusBoard) Get(n *domain.Node) (string, bool) {
	s, ok := b.status[n]
	return s, ok
}

// Set replaces the text for n
func (b *StatusBoard) Set(n *domain.Node, text string) {
	b.status[n] = text
	b.changed(n)
}

// Clear removes the text for n
func (b *StatusBoard) Clear(n *domain.Node) {
	if _, ok := b.status[n]; !ok {
		return
	}
	delete(b.status, n)
	b.changed(n)
}

// Snapshot captures the status of n so it can be restored later
func (b *StatusBoard) Snapshot(n *domain.Node) Saved {
	s, ok := b.status[n]
	return Saved{Text: s, Set: ok}
}

// Restore puts back a snapshot taken with Snapshot
func (b *StatusBoard) Restore(n *domain.Node, s Saved) {
	if !s.Set {
		b.Clear(n)
		return
	}
	b.Set(n, s.Text)
}

// Len returns the number of nodes with a status
func (b *StatusBoard) Len() int {
	return len(b.status)
}

// OnChange registers fn to be called with every node whose status changes
func (b *StatusBoard) OnChange(fn func(*domain.Node)) {
	b.listeners = append(b.listeners, fn)
}

func (b *StatusBoard) changed(n *domain.Node) {
	for _, fn := range b.listeners {
		fn(n)
	}
}

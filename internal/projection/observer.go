package projection

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

var _ ports.TreeObserver = (*Model)(nil)

// EventKind says what a view listener is being told
type EventKind int

const (
	EventAboutToInsert EventKind = iota
	EventInserted
	EventAboutToRemove
	EventRemoved
	EventAboutToMove
	EventMoved
	EventChanged
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventAboutToInsert:
		return "about-to-insert"
	case EventInserted:
		return "inserted"
	case EventAboutToRemove:
		return "about-to-remove"
	case EventRemoved:
		return "removed"
	case EventAboutToMove:
		return "about-to-move"
	case EventMoved:
		return "moved"
	case EventChanged:
		return "changed"
	case EventReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Event describes a change to the projection. Parent, First and Last give the
// affected rows; moves also set DestParent and DestRow. Changed events set Parent
// to the address of the changed node.
type Event struct {
	Kind       EventKind
	Parent     domain.Address
	First      int
	Last       int
	DestParent domain.Address
	DestRow    int
}

type listener struct {
	id int
	fn func(Event)
}

// Subscribe registers fn for every event and returns a function that removes it
func (m *Model) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	return func() {
		m.listeners = slices.DeleteFunc(m.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

func (m *Model) emit(e Event) {
	for _, l := range m.listeners {
		l.fn(e)
	}
}

type bracketKind int

const (
	bracketInsert bracketKind = iota
	bracketRemove
	bracketMove
)

func (k bracketKind) String() string {
	return [...]string{"insert", "remove", "move"}[k]
}

// bracket holds what Begin saw of the tree before the document changed
type bracket struct {
	kind  bracketKind
	event Event

	parent *mirror // insert and remove; move source
	dst    *mirror // move destination
	moved  *mirror
}

func (m *Model) begin(b *bracket) {
	if m.open != nil {
		panic(fmt.Sprintf("projection: begin %s inside open %s bracket", b.kind, m.open.kind))
	}
	m.open = b
}

func (m *Model) end(kind bracketKind) *bracket {
	b := m.open
	if b == nil || b.kind != kind {
		panic(fmt.Sprintf("projection: end %s without matching begin", kind))
	}
	m.open = nil
	return b
}

func (m *Model) BeginInsert(parent domain.Address, first, last int) {
	e := Event{Kind: EventAboutToInsert, Parent: parent.Clone(), First: first, Last: last}
	m.begin(&bracket{kind: bracketInsert, event: e, parent: m.loaded(parent)})
	m.emit(e)
}

func (m *Model) EndInsert() {
	b := m.end(bracketInsert)
	if p := b.parent; p != nil {
		first, last := b.event.First, b.event.Last
		added := make([]*mirror, 0, last-first+1)
		for _, n := range p.node.Children[first : last+1] {
			added = append(added, &mirror{node: n, parent: p})
		}
		p.children = slices.Insert(p.children, first, added...)
		m.rebaseInsert(p, first, len(added))
	}
	e := b.event
	e.Kind = EventInserted
	m.emit(e)
}

func (m *Model) BeginRemove(parent domain.Address, first, last int) {
	e := Event{Kind: EventAboutToRemove, Parent: parent.Clone(), First: first, Last: last}
	m.begin(&bracket{kind: bracketRemove, event: e, parent: m.loaded(parent)})
	m.emit(e)
}

func (m *Model) EndRemove() {
	b := m.end(bracketRemove)
	if p := b.parent; p != nil {
		first, last := b.event.First, b.event.Last
		removed := slices.Clone(p.children[first : last+1])
		p.children = slices.Delete(p.children, first, last+1)
		m.rebaseRemove(p, first, last, removed)
		for _, r := range removed {
			r.parent = nil
		}
	}
	e := b.event
	e.Kind = EventRemoved
	m.emit(e)
}

func (m *Model) BeginMove(srcParent domain.Address, srcRow int, dstParent domain.Address, dstRow int) {
	e := Event{
		Kind:       EventAboutToMove,
		Parent:     srcParent.Clone(),
		First:      srcRow,
		Last:       srcRow,
		DestParent: dstParent.Clone(),
		DestRow:    dstRow,
	}
	b := &bracket{kind: bracketMove, event: e, parent: m.loaded(srcParent), dst: m.loaded(dstParent)}
	if b.parent != nil {
		b.moved = b.parent.children[srcRow]
	}
	m.begin(b)
	m.emit(e)
}

func (m *Model) EndMove() {
	b := m.end(bracketMove)
	src, dst := b.parent, b.dst
	srcRow, dstRow := b.event.First, b.event.DestRow

	switch {
	case src != nil && src == dst:
		src.children = slices.Delete(src.children, srcRow, srcRow+1)
		src.children = slices.Insert(src.children, dstRow, b.moved)
		m.rebaseMoveWithin(src, srcRow, dstRow)
	case src != nil:
		src.children = slices.Delete(src.children, srcRow, srcRow+1)
		if dst == nil {
			dst = m.splice(b.moved)
		} else {
			dst.children = slices.Insert(dst.children, dstRow, b.moved)
		}
		b.moved.parent = dst
		m.rebaseMoveAcross(src, srcRow, dst, dstRow)
	case dst != nil:
		n := dst.node.Children[dstRow]
		dst.children = slices.Insert(dst.children, dstRow, &mirror{node: n, parent: dst})
		m.rebaseInsert(dst, dstRow, 1)
	}

	e := b.event
	e.Kind = EventMoved
	m.emit(e)
}

// splice loads the path to the moved node's new parent from the live document
// and puts the existing mirror in place of the freshly created one, so indexes
// into the moved subtree stay valid.
func (m *Model) splice(moved *mirror) *mirror {
	a, err := m.src.Document().AddressOf(moved.node)
	if err != nil {
		return nil
	}
	parent := m.root
	for _, r := range a.Parent() {
		parent.load()
		parent = parent.children[r]
	}
	parent.load()
	parent.children[a.Position()] = moved
	return parent
}

func (m *Model) Changed(a domain.Address) {
	m.emit(Event{Kind: EventChanged, Parent: a.Clone(), First: a.Position(), Last: a.Position()})
}

// Reset drops every mirror and invalidates every persistent index
func (m *Model) Reset() {
	if m.open != nil {
		panic(fmt.Sprintf("projection: reset inside open %s bracket", m.open.kind))
	}
	m.root = &mirror{node: m.src.Document().Root()}
	dead := 0
	m.handles.each(func(h *handle) {
		h.live = false
		dead++
	})
	m.logger.Debug("projection reset", zap.Int("invalidated", dead))
	m.emit(Event{Kind: EventReset})
}

// loaded returns the mirror of the folder at a if its children are loaded
func (m *Model) loaded(a domain.Address) *mirror {
	p := m.lookup(a)
	if p == nil || !p.loaded {
		return nil
	}
	return p
}

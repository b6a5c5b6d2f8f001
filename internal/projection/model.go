// Package projection mirrors a document for a view layer. Mirror nodes are
// created the first time a view walks into them, and indexes held by the view
// across edits are kept valid by rebasing them inside each structural bracket.
package projection

import (
	"slices"

	"go.uber.org/zap"

	"bookmarked/internal/domain"
)

// Column identifies one displayed attribute of a row
type Column int

const (
	ColumnTitle Column = iota
	ColumnURL
	ColumnDescription
	ColumnStatus
	ColumnCount
)

func (c Column) String() string {
	switch c {
	case ColumnTitle:
		return "Title"
	case ColumnURL:
		return "URL"
	case ColumnDescription:
		return "Description"
	case ColumnStatus:
		return "Status"
	default:
		return ""
	}
}

// Source supplies the document being mirrored
type Source interface {
	Document() *domain.Document
}

// StatusSource provides the transient per-node status shown in ColumnStatus
type StatusSource interface {
	Status(n *domain.Node) string
}

// mirror shadows one document node. Its children are nil until first loaded,
// and from then on kept 1:1 with the folder's children.
type mirror struct {
	node     *domain.Node
	parent   *mirror
	children []*mirror
	loaded   bool
}

func (m *mirror) load() {
	if m.loaded {
		return
	}
	m.loaded = true
	if !m.node.IsFolder() {
		return
	}
	m.children = make([]*mirror, len(m.node.Children))
	for i, c := range m.node.Children {
		m.children[i] = &mirror{node: c, parent: m}
	}
}

func (m *mirror) row() int {
	if m.parent == nil {
		return -1
	}
	return slices.Index(m.parent.children, m)
}

// address walks up the mirror parents
func (m *mirror) address() domain.Address {
	rev := make([]int, 0, 4)
	for c := m; c.parent != nil; c = c.parent {
		rev = append(rev, c.row())
	}
	slices.Reverse(rev)
	return domain.Address(rev)
}

// inside reports whether m is one of set or lies below one of them
func (m *mirror) inside(set []*mirror) bool {
	for c := m; c != nil; c = c.parent {
		if slices.Contains(set, c) {
			return true
		}
	}
	return false
}

// Index is a transient reference to one cell. It is only valid until the next
// structural edit; use Persist to keep a reference across edits.
type Index struct {
	row int
	col Column
	m   *mirror
}

// IsValid reports whether the index refers to a row or the root
func (i Index) IsValid() bool {
	return i.m != nil
}

// Row returns the row within the parent, or -1 for the root
func (i Index) Row() int {
	return i.row
}

// Column returns the column
func (i Index) Column() Column {
	return i.col
}

// Option configures a Model
type Option func(*Model)

// WithStatusSource sets where ColumnStatus reads from
func WithStatusSource(s StatusSource) Option {
	return func(m *Model) {
		m.status = s
	}
}

// WithLogger sets the model logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// Model is the projection of one document. It must be registered as an
// observer of the editor that mutates the document.
type Model struct {
	src     Source
	root    *mirror
	handles handleTable
	status  StatusSource
	logger  *zap.Logger

	open      *bracket
	listeners []listener
	nextID    int
}

// New creates a projection over the document of src
func New(src Source, opts ...Option) *Model {
	m := &Model{
		src:    src,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.root = &mirror{node: src.Document().Root()}
	return m
}

// Root returns the index of the root folder
func (m *Model) Root() Index {
	return Index{row: -1, m: m.root}
}

func (m *Model) mirrorOf(parent Index) *mirror {
	if parent.m == nil {
		return m.root
	}
	return parent.m
}

// Index returns the cell at row, col under parent. An invalid parent means the root.
func (m *Model) Index(row int, col Column, parent Index) Index {
	p := m.mirrorOf(parent)
	p.load()
	if row < 0 || row >= len(p.children) || col < 0 || col >= ColumnCount {
		return Index{}
	}
	return Index{row: row, col: col, m: p.children[row]}
}

// Parent returns the index of the row containing i
func (m *Model) Parent(i Index) Index {
	if i.m == nil || i.m.parent == nil {
		return Index{}
	}
	p := i.m.parent
	if p == m.root {
		return m.Root()
	}
	return Index{row: p.row(), m: p}
}

// RowCount returns the number of children under parent, loading them if needed
func (m *Model) RowCount(parent Index) int {
	p := m.mirrorOf(parent)
	p.load()
	return len(p.children)
}

// HasChildren reports whether parent has rows, without loading them
func (m *Model) HasChildren(parent Index) bool {
	n := m.mirrorOf(parent).node
	return n.IsFolder() && len(n.Children) > 0
}

// Node returns the document node behind i
func (m *Model) Node(i Index) *domain.Node {
	if i.m == nil {
		return nil
	}
	return i.m.node
}

// AddressOf returns the current document address of i
func (m *Model) AddressOf(i Index) domain.Address {
	if i.m == nil {
		return domain.RootAddress()
	}
	return i.m.address()
}

// IndexFor returns the title cell of the node at a, loading mirrors along the path
func (m *Model) IndexFor(a domain.Address) Index {
	cur := m.root
	row := -1
	for _, r := range a {
		cur.load()
		if r < 0 || r >= len(cur.children) {
			return Index{}
		}
		cur, row = cur.children[r], r
	}
	return Index{row: row, m: cur}
}

// Data returns the text shown in a cell
func (m *Model) Data(i Index) string {
	if i.m == nil {
		return ""
	}
	n := i.m.node
	switch i.col {
	case ColumnTitle:
		if n.Kind == domain.KindSeparator {
			return "────────"
		}
		return n.Title
	case ColumnURL:
		return n.URL
	case ColumnDescription:
		return n.Description
	case ColumnStatus:
		if m.status == nil {
			return ""
		}
		return m.status.Status(n)
	default:
		return ""
	}
}

// Row is one line of a flattened view
type Row struct {
	Index Index
	Depth int
	Node  *domain.Node
}

// Flatten lists rows in display order, descending into folders for which
// expanded returns true. A nil expanded uses each folder's Open flag.
func (m *Model) Flatten(expanded func(*domain.Node) bool) []Row {
	if expanded == nil {
		expanded = func(n *domain.Node) bool { return n.Open }
	}
	var rows []Row
	var visit func(p *mirror, depth int)
	visit = func(p *mirror, depth int) {
		p.load()
		for r, c := range p.children {
			rows = append(rows, Row{Index: Index{row: r, m: c}, Depth: depth, Node: c.node})
			if c.node.IsFolder() && expanded(c.node) {
				visit(c, depth+1)
			}
		}
	}
	visit(m.root, 0)
	return rows
}

// lookup finds the mirror at a if every mirror on the path is loaded
func (m *Model) lookup(a domain.Address) *mirror {
	cur := m.root
	for _, r := range a {
		if !cur.loaded || r < 0 || r >= len(cur.children) {
			return nil
		}
		cur = cur.children[r]
	}
	return cur
}

package domain

import (
	"errors"
	"slices"
)

// Document is a mutable ordered tree of folders, bookmarks and separators.
// It owns the root folder, which always exists. Parent, sibling and position are
// derived from the live tree on every query and never cached.
//
// Only the command layer should call the structural primitives (InsertChild,
// RemoveChild, MoveChild); everything else reads.
type Document struct {
	root *Node
}

// NewDocument creates a document with an empty, open root folder
func NewDocument() *Document {
	return &Document{root: &Node{Kind: KindFolder, Open: true}}
}

// NewDocumentFromRoot wraps an existing tree. A nil or non-folder root is replaced
// by an empty folder.
func NewDocumentFromRoot(root *Node) *Document {
	if root == nil || !root.IsFolder() {
		return NewDocument()
	}
	return &Document{root: root}
}

// Root returns the root folder
func (d *Document) Root() *Node {
	return d.root
}

// Resolve returns the node at an address
func (d *Document) Resolve(a Address) (*Node, error) {
	n := d.root
	for i, idx := range a {
		if !n.IsFolder() || idx < 0 || idx >= len(n.Children) {
			return nil, notFound("resolve", a[:i+1])
		}
		n = n.Children[idx]
	}
	return n, nil
}

// ResolveFolder resolves an address that must denote a folder
func (d *Document) ResolveFolder(a Address) (*Node, error) {
	n, err := d.Resolve(a)
	if err != nil {
		return nil, err
	}
	if !n.IsFolder() {
		return nil, violation("resolve folder", a, n.Kind.String()+" cannot have children")
	}
	return n, nil
}

// AddressOf recomputes the current address of a node by walking the tree from the root
func (d *Document) AddressOf(target *Node) (Address, error) {
	if target == d.root {
		return Address{}, nil
	}
	var path Address
	if d.find(d.root, target, &path) {
		return path, nil
	}
	return nil, &AddressError{Op: "address of", Address: nil, Err: ErrAddressNotFound}
}

func (d *Document) find(n, target *Node, path *Address) bool {
	for i, c := range n.Children {
		*path = append(*path, i)
		if c == target {
			return true
		}
		if c.IsFolder() && d.find(c, target, path) {
			return true
		}
		*path = (*path)[:len(*path)-1]
	}
	return false
}

// Contains reports whether the node is currently attached to the document
func (d *Document) Contains(n *Node) bool {
	_, err := d.AddressOf(n)
	return err == nil
}

// ValidateInsert checks that n could be inserted at pos under parent
func (d *Document) ValidateInsert(parent Address, pos int) error {
	folder, err := d.ResolveFolder(parent)
	if err != nil {
		return err
	}
	if pos < 0 || pos > len(folder.Children) {
		return notFound("insert", parent.Child(pos))
	}
	return nil
}

// InsertChild places n at position pos among the children of the folder at parent
func (d *Document) InsertChild(parent Address, pos int, n *Node) error {
	if n == nil {
		return violation("insert", parent.Child(pos), "nil node")
	}
	if err := d.ValidateInsert(parent, pos); err != nil {
		return err
	}
	folder, _ := d.Resolve(parent)
	folder.Children = slices.Insert(folder.Children, pos, n)
	return nil
}

// ValidateRemove checks that a denotes a removable node
func (d *Document) ValidateRemove(a Address) error {
	if a.IsRoot() {
		return violation("remove", a, "the root cannot be removed")
	}
	_, err := d.Resolve(a)
	return err
}

// RemoveChild detaches the node at a and returns it with its subtree intact,
// so callers can re-insert it later.
func (d *Document) RemoveChild(a Address) (*Node, error) {
	if err := d.ValidateRemove(a); err != nil {
		return nil, err
	}
	parent, _ := d.Resolve(a.Parent())
	pos := a.Position()
	n := parent.Children[pos]
	parent.Children = slices.Delete(parent.Children, pos, pos+1)
	return n, nil
}

// ValidateMove checks the arguments of MoveChild without changing anything
func (d *Document) ValidateMove(from, toParent Address, toPos int) error {
	if from.IsRoot() {
		return violation("move", from, "the root cannot be moved")
	}
	if from.Contains(toParent) {
		return violation("move", from, "cannot move a node into itself")
	}
	if _, err := d.Resolve(from); err != nil {
		return err
	}
	src, _ := d.Resolve(from.Parent())
	dst, err := d.ResolveFolder(toParent)
	if err != nil {
		return err
	}

	limit := len(dst.Children)
	if dst == src {
		limit--
	}
	if toPos < 0 || toPos > limit {
		return notFound("move", toParent.Child(toPos))
	}
	return nil
}

// MoveChild detaches the node at from and inserts it into the folder at toParent.
// Both addresses are resolved before anything is removed; toPos counts positions
// in the destination folder after the removal.
func (d *Document) MoveChild(from, toParent Address, toPos int) error {
	if err := d.ValidateMove(from, toParent, toPos); err != nil {
		return err
	}
	src, _ := d.Resolve(from.Parent())
	dst, _ := d.Resolve(toParent)

	pos := from.Position()
	n := src.Children[pos]
	src.Children = slices.Delete(src.Children, pos, pos+1)
	dst.Children = slices.Insert(dst.Children, toPos, n)
	return nil
}

// Walk visits every node except the root in pre-order, which is Address order.
// Returning ErrSkipSubtree from fn skips a folder's children; any other error stops the walk.
func (d *Document) Walk(fn func(Address, *Node) error) error {
	err := walk(d.root, Address{}, fn)
	if errors.Is(err, ErrSkipSubtree) {
		return nil
	}
	return err
}

// WalkFrom walks the subtree below the folder at a
func (d *Document) WalkFrom(a Address, fn func(Address, *Node) error) error {
	n, err := d.Resolve(a)
	if err != nil {
		return err
	}
	err = walk(n, a.Clone(), fn)
	if errors.Is(err, ErrSkipSubtree) {
		return nil
	}
	return err
}

func walk(n *Node, at Address, fn func(Address, *Node) error) error {
	for i, c := range n.Children {
		addr := at.Child(i)
		err := fn(addr, c)
		if errors.Is(err, ErrSkipSubtree) {
			continue
		}
		if err != nil {
			return err
		}
		if c.IsFolder() {
			if err := walk(c, addr, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Counts holds node totals by kind
type Counts struct {
	Folders    int
	Bookmarks  int
	Separators int
}

// Count tallies all nodes below the root
func (d *Document) Count() Counts {
	var c Counts
	_ = d.Walk(func(_ Address, n *Node) error {
		switch n.Kind {
		case KindFolder:
			c.Folders++
		case KindBookmark:
			c.Bookmarks++
		case KindSeparator:
			c.Separators++
		}
		return nil
	})
	return c
}

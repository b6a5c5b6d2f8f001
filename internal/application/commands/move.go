package commands

import (
	"bookmarked/internal/domain"
)

// MoveCommand moves one node. The destination to is given in pre-move
// coordinates and means "the slot right after the node currently at
// to.PreviousSibling()", or the front of the folder when to is a first child.
// Anchoring on a node rather than an index keeps the target correct when the
// removal shifts positions on a path shared by from and to.
//
// After Execute, To() is the node's real new address and From() is the
// address that puts it back: right after its old previous sibling, or first in
// its old parent.
type MoveCommand struct {
	ed   *Editor
	from domain.Address
	to   domain.Address
}

// NewMoveCommand creates a move of the node at from to the slot at to
func NewMoveCommand(ed *Editor, from, to domain.Address) *MoveCommand {
	return &MoveCommand{ed: ed, from: from.Clone(), to: to.Clone()}
}

func (c *MoveCommand) Name() string {
	return "Move"
}

// From returns the current source address
func (c *MoveCommand) From() domain.Address {
	return c.from.Clone()
}

// To returns the current destination address
func (c *MoveCommand) To() domain.Address {
	return c.to.Clone()
}

func (c *MoveCommand) Execute() error {
	doc := c.ed.Document()

	if c.from.IsRoot() || c.to.IsRoot() {
		return &domain.AddressError{Op: "move", Address: c.from, Err: domain.ErrStructuralViolation}
	}
	node, err := doc.Resolve(c.from)
	if err != nil {
		return err
	}
	toParentAddr := c.to.Parent()
	if c.from.Contains(toParentAddr) {
		return &domain.AddressError{Op: "move", Address: c.to, Err: domain.ErrStructuralViolation}
	}
	toParent, err := doc.ResolveFolder(toParentAddr)
	if err != nil {
		return err
	}

	var anchor *domain.Node
	if prev, ok := c.to.PreviousSibling(); ok {
		anchor, err = doc.Resolve(prev)
		if err != nil {
			return err
		}
	}

	oldParent, err := doc.Resolve(c.from.Parent())
	if err != nil {
		return err
	}
	oldPos := c.from.Position()
	wasFirst := oldPos == 0
	var oldPrev *domain.Node
	if !wasFirst {
		oldPrev = oldParent.Children[oldPos-1]
	}

	// Destination index once the node has been taken out
	pos := 0
	switch {
	case anchor == node:
		pos = oldPos
	case anchor != nil:
		pos = indexOf(toParent, anchor) + 1
		if toParent == oldParent && pos-1 > oldPos {
			pos--
		}
	}

	if toParent != oldParent || pos != oldPos {
		if err := c.ed.Move(c.from, toParentAddr, pos); err != nil {
			return err
		}
	}

	newTo, err := doc.AddressOf(node)
	if err != nil {
		return err
	}
	var newFrom domain.Address
	if wasFirst {
		parentAddr, err := doc.AddressOf(oldParent)
		if err != nil {
			return err
		}
		newFrom = parentAddr.Child(0)
	} else {
		prevAddr, err := doc.AddressOf(oldPrev)
		if err != nil {
			return err
		}
		newFrom = prevAddr.NextSibling()
	}

	c.from, c.to = newFrom, newTo
	return nil
}

// Unexecute runs the move with swapped addresses and adopts what it computed
func (c *MoveCommand) Unexecute() error {
	inverse := NewMoveCommand(c.ed, c.to, c.from)
	if err := inverse.Execute(); err != nil {
		return err
	}
	c.from, c.to = inverse.to, inverse.from
	return nil
}

func (c *MoveCommand) AffectedAncestor() domain.Address {
	return domain.CommonAncestor(c.from.Parent(), c.to.Parent())
}

func indexOf(folder, child *domain.Node) int {
	for i, c := range folder.Children {
		if c == child {
			return i
		}
	}
	return -1
}

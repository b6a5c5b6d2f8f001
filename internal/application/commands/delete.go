package commands

import (
	"fmt"

	"bookmarked/internal/domain"
)

// DeleteCommand removes a node. Deleting is creation run backwards: it removes
// the node's placement on Execute and re-inserts it on Unexecute. A folder's
// children are deleted first, last address first, by a macro built on the first
// Execute; Unexecute restores the empty folder and then its children.
type DeleteCommand struct {
	ed       *Editor
	place    placement
	children *Macro
}

// NewDeleteCommand deletes the node at the given address
func NewDeleteCommand(ed *Editor, at domain.Address) *DeleteCommand {
	return &DeleteCommand{
		ed:    ed,
		place: placement{at: at.Clone()},
	}
}

func (c *DeleteCommand) Name() string {
	return "Delete"
}

func (c *DeleteCommand) Execute() error {
	n, err := c.ed.Document().Resolve(c.place.at)
	if err != nil {
		return err
	}
	if c.place.at.IsRoot() {
		return &domain.AddressError{Op: "delete", Address: c.place.at, Err: domain.ErrStructuralViolation}
	}

	if n.IsFolder() && c.children == nil {
		c.children = NewMacro("Delete contents")
		for i := len(n.Children) - 1; i >= 0; i-- {
			c.children.Add(NewDeleteCommand(c.ed, c.place.at.Child(i)))
		}
	}

	if c.children != nil {
		if err := c.children.Execute(); err != nil {
			return err
		}
	}
	if err := c.place.remove(c.ed); err != nil {
		if c.children != nil {
			_ = c.children.Unexecute()
		}
		return err
	}
	return nil
}

func (c *DeleteCommand) Unexecute() error {
	if err := c.place.insert(c.ed); err != nil {
		return err
	}
	if c.children != nil {
		if err := c.children.Unexecute(); err != nil {
			_ = c.place.remove(c.ed)
			return err
		}
	}
	return nil
}

func (c *DeleteCommand) AffectedAncestor() domain.Address {
	return c.place.at.Parent()
}

// Address is the address of the deleted node
func (c *DeleteCommand) Address() domain.Address {
	return c.place.at.Clone()
}

// NewDeleteMany deletes a selection of nodes. Addresses nested inside another
// selected address are dropped, and the rest are deleted last address first so
// each deletion leaves the addresses still to be processed valid.
func NewDeleteMany(ed *Editor, addrs []domain.Address) *Macro {
	outer := domain.Outermost(addrs)
	domain.SortDescending(outer)

	m := NewMacro(fmt.Sprintf("Delete %d item(s)", len(outer)))
	for _, a := range outer {
		m.Add(NewDeleteCommand(ed, a))
	}
	return m
}

package commands

import (
	"fmt"

	"bookmarked/internal/domain"
)

// SortCommand sorts the direct children of a folder by insertion sort over the
// live tree. Each out-of-place child is moved once, directly after the last
// predecessor that does not sort after it, so an almost sorted folder produces
// almost no moves. The moves are recorded as a macro on the first Execute;
// redo replays the macro and Unexecute reverses it.
type SortCommand struct {
	ed    *Editor
	at    domain.Address
	macro *Macro
}

// NewSortCommand sorts the folder at the given address
func NewSortCommand(ed *Editor, at domain.Address) *SortCommand {
	return &SortCommand{ed: ed, at: at.Clone()}
}

func (c *SortCommand) Name() string {
	return "Sort Alphabetically"
}

// Moves returns the number of moves recorded by the first Execute
func (c *SortCommand) Moves() int {
	if c.macro == nil {
		return 0
	}
	return c.macro.Len()
}

func (c *SortCommand) Execute() error {
	if c.macro != nil {
		return c.macro.Execute()
	}

	folder, err := c.ed.Document().ResolveFolder(c.at)
	if err != nil {
		return err
	}

	macro := NewMacro(c.Name())
	for j := 1; j < len(folder.Children); j++ {
		node := folder.Children[j]
		k := j - 1
		for k >= 0 && domain.CompareSortKey(folder.Children[k], node) > 0 {
			k--
		}
		if k == j-1 {
			continue
		}

		mv := NewMoveCommand(c.ed, c.at.Child(j), c.at.Child(k+1))
		if err := mv.Execute(); err != nil {
			_ = macro.Unexecute()
			return err
		}
		macro.Add(mv)
	}

	c.macro = macro
	return nil
}

func (c *SortCommand) Unexecute() error {
	if c.macro == nil {
		return nil
	}
	return c.macro.Unexecute()
}

func (c *SortCommand) AffectedAncestor() domain.Address {
	return c.at.Clone()
}

// RecursiveSortCommand sorts a folder and every folder below it, each with its
// own SortCommand, top-down. Descendant addresses are only known once their
// parent is sorted, so the macro is assembled during the first Execute.
type RecursiveSortCommand struct {
	ed    *Editor
	at    domain.Address
	macro *Macro
}

// NewRecursiveSort sorts the folder at the given address and all its descendants
func NewRecursiveSort(ed *Editor, at domain.Address) *RecursiveSortCommand {
	return &RecursiveSortCommand{ed: ed, at: at.Clone()}
}

func (c *RecursiveSortCommand) Name() string {
	return "Recursive Sort"
}

// Folders returns the number of folders sorted by the first Execute
func (c *RecursiveSortCommand) Folders() int {
	if c.macro == nil {
		return 0
	}
	return c.macro.Len()
}

func (c *RecursiveSortCommand) Execute() error {
	if c.macro != nil {
		return c.macro.Execute()
	}

	macro := NewMacro(c.Name())
	if err := c.sortTree(macro, c.at); err != nil {
		_ = macro.Unexecute()
		return fmt.Errorf("recursive sort of %s: %w", c.at, err)
	}
	c.macro = macro
	return nil
}

func (c *RecursiveSortCommand) sortTree(macro *Macro, at domain.Address) error {
	s := NewSortCommand(c.ed, at)
	if err := s.Execute(); err != nil {
		return err
	}
	macro.Add(s)

	folder, err := c.ed.Document().ResolveFolder(at)
	if err != nil {
		return err
	}
	for i, child := range folder.Children {
		if child.IsFolder() {
			if err := c.sortTree(macro, at.Child(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *RecursiveSortCommand) Unexecute() error {
	if c.macro == nil {
		return nil
	}
	return c.macro.Unexecute()
}

func (c *RecursiveSortCommand) AffectedAncestor() domain.Address {
	return c.at.Clone()
}

package commands

import (
	"fmt"

	"bookmarked/internal/domain"
)

// ImportMode selects how imported nodes are added to the document
type ImportMode int

const (
	// ImportIntoFolder adds the imported nodes inside a new folder
	ImportIntoFolder ImportMode = iota
	// ImportReplace deletes every top-level node and adds the imported nodes in their place
	ImportReplace
)

// ImportCommand adds nodes produced by a foreign format reader. It is a macro of
// delete and create commands assembled on the first Execute.
type ImportCommand struct {
	ed     *Editor
	mode   ImportMode
	at     domain.Address
	folder string
	nodes  []*domain.Node
	macro  *Macro
}

// NewImportCommand imports nodes. For ImportIntoFolder, at and folderTitle
// place and name the new folder; both are ignored for ImportReplace.
func NewImportCommand(ed *Editor, mode ImportMode, at domain.Address, folderTitle string, nodes []*domain.Node) *ImportCommand {
	clones := make([]*domain.Node, len(nodes))
	for i, n := range nodes {
		clones[i] = n.Clone()
	}
	return &ImportCommand{
		ed:     ed,
		mode:   mode,
		at:     at.Clone(),
		folder: folderTitle,
		nodes:  clones,
	}
}

func (c *ImportCommand) Name() string {
	return fmt.Sprintf("Import %d item(s)", len(c.nodes))
}

func (c *ImportCommand) Execute() error {
	if c.macro == nil {
		c.macro = c.build()
	}
	if err := c.macro.Execute(); err != nil {
		c.macro = nil
		return err
	}
	return nil
}

func (c *ImportCommand) build() *Macro {
	m := NewMacro(c.Name())
	switch c.mode {
	case ImportReplace:
		root := c.ed.Document().Root()
		for i := len(root.Children) - 1; i >= 0; i-- {
			m.Add(NewDeleteCommand(c.ed, domain.RootAddress().Child(i)))
		}
		for i, n := range c.nodes {
			m.Add(NewCreateNode(c.ed, domain.RootAddress().Child(i), n.Clone(), "Import"))
		}
	default:
		folder := domain.NewFolder(c.folder)
		for _, n := range c.nodes {
			folder.Children = append(folder.Children, n.Clone())
		}
		m.Add(NewCreateNode(c.ed, c.at, folder, "Import"))
	}
	return m
}

func (c *ImportCommand) Unexecute() error {
	if c.macro == nil {
		return nil
	}
	return c.macro.Unexecute()
}

func (c *ImportCommand) AffectedAncestor() domain.Address {
	if c.mode == ImportReplace {
		return domain.RootAddress()
	}
	return c.at.Parent()
}

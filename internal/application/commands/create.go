package commands

import (
	"fmt"

	"bookmarked/internal/domain"
)

// CreateCommand inserts a new folder, bookmark, separator or a copy of an existing node
type CreateCommand struct {
	ed    *Editor
	name  string
	place placement
}

// NewCreateFolder creates a folder at the given address. Folders created
// interactively start open.
func NewCreateFolder(ed *Editor, at domain.Address, title string) *CreateCommand {
	n := domain.NewFolder(title)
	n.Open = true
	return NewCreateNode(ed, at, n, "Create Folder")
}

// NewCreateBookmark creates a bookmark at the given address
func NewCreateBookmark(ed *Editor, at domain.Address, title, url string) *CreateCommand {
	return NewCreateNode(ed, at, domain.NewBookmark(title, url), "Create Bookmark")
}

// NewCreateSeparator creates a separator at the given address
func NewCreateSeparator(ed *Editor, at domain.Address) *CreateCommand {
	return NewCreateNode(ed, at, domain.NewSeparator(), "Insert Separator")
}

// NewCloneCommand inserts a deep copy of the node currently at from. The copy is
// taken now, so later edits to the original do not leak into it.
func NewCloneCommand(ed *Editor, from, at domain.Address) (*CreateCommand, error) {
	src, err := ed.Document().Resolve(from)
	if err != nil {
		return nil, err
	}
	if from.IsRoot() {
		return nil, &domain.AddressError{Op: "copy", Address: from, Err: domain.ErrStructuralViolation}
	}
	return NewCreateNode(ed, at, src.Clone(), "Copy"), nil
}

// NewCreateNode inserts n as given. The command owns n from now on.
func NewCreateNode(ed *Editor, at domain.Address, n *domain.Node, name string) *CreateCommand {
	if name == "" {
		name = fmt.Sprintf("Create %s", n.Kind)
	}
	return &CreateCommand{
		ed:    ed,
		name:  name,
		place: placement{at: at.Clone(), node: n},
	}
}

func (c *CreateCommand) Name() string {
	return c.name
}

func (c *CreateCommand) Execute() error {
	return c.place.insert(c.ed)
}

func (c *CreateCommand) Unexecute() error {
	return c.place.remove(c.ed)
}

func (c *CreateCommand) AffectedAncestor() domain.Address {
	return c.place.at.Parent()
}

// Address is where the node is created
func (c *CreateCommand) Address() domain.Address {
	return c.place.at.Clone()
}

// Node is the created node
func (c *CreateCommand) Node() *domain.Node {
	return c.place.node
}

// NewPasteCommand inserts copies of nodes at consecutive addresses starting at at
func NewPasteCommand(ed *Editor, at domain.Address, nodes []*domain.Node) *Macro {
	m := NewMacro(fmt.Sprintf("Paste %d item(s)", len(nodes)))
	pos := at.Clone()
	for _, n := range nodes {
		m.Add(NewCreateNode(ed, pos, n.Clone(), "Paste"))
		pos = pos.NextSibling()
	}
	return m
}

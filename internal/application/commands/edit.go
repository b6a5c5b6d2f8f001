package commands

import (
	"fmt"

	"bookmarked/internal/application"
	"bookmarked/internal/domain"
)

// Attr names an editable node attribute
type Attr int

const (
	AttrTitle Attr = iota
	AttrDescription
	AttrURL
	AttrIcon
	AttrMeta
)

func (a Attr) String() string {
	switch a {
	case AttrTitle:
		return "title"
	case AttrDescription:
		return "description"
	case AttrURL:
		return "url"
	case AttrIcon:
		return "icon"
	case AttrMeta:
		return "meta"
	default:
		return "unknown"
	}
}

// ParseAttr maps a field name to an attribute. Any name prefixed with "meta:"
// selects a metadata key.
func ParseAttr(s string) (Attr, string, bool) {
	switch s {
	case "title":
		return AttrTitle, "", true
	case "description", "desc":
		return AttrDescription, "", true
	case "url":
		return AttrURL, "", true
	case "icon":
		return AttrIcon, "", true
	}
	if len(s) > 5 && s[:5] == "meta:" {
		return AttrMeta, s[5:], true
	}
	return 0, "", false
}

// Patch sets one attribute. Key selects the metadata entry for AttrMeta.
// Unset clears the attribute (removes the metadata key).
type Patch struct {
	Attr  Attr
	Key   string
	Value string
	Unset bool
}

// EditCommand applies a batch of patches to one node. Execute records the old
// values as a reverse patch set, and Unexecute replays that set through the
// same code path.
type EditCommand struct {
	ed      *Editor
	at      domain.Address
	patches []Patch
	reverse []Patch
}

// NewEditCommand creates an edit of the node at the given address
func NewEditCommand(ed *Editor, at domain.Address, patches ...Patch) *EditCommand {
	return &EditCommand{ed: ed, at: at.Clone(), patches: patches}
}

func (c *EditCommand) Name() string {
	return "Edit"
}

func (c *EditCommand) Execute() error {
	rev, err := applyPatches(c.ed, c.at, c.patches)
	if err != nil {
		return err
	}
	c.reverse = rev
	return nil
}

func (c *EditCommand) Unexecute() error {
	_, err := applyPatches(c.ed, c.at, c.reverse)
	return err
}

func (c *EditCommand) AffectedAncestor() domain.Address {
	return c.at.Parent()
}

// applyPatches applies patches in order and returns the patches that undo them,
// already in the order they must be applied.
func applyPatches(ed *Editor, at domain.Address, patches []Patch) ([]Patch, error) {
	n, err := ed.Document().Resolve(at)
	if err != nil {
		return nil, err
	}
	for _, p := range patches {
		if err := checkPatch(n, p); err != nil {
			return nil, &application.CommandError{Command: "edit", Address: at, Err: err}
		}
	}

	reverse := make([]Patch, 0, len(patches))
	err = ed.Update(at, func(n *domain.Node) error {
		for _, p := range patches {
			reverse = append([]Patch{applyPatch(n, p)}, reverse...)
		}
		return nil
	})
	return reverse, err
}

func checkPatch(n *domain.Node, p Patch) error {
	switch p.Attr {
	case AttrTitle, AttrDescription:
		return nil
	case AttrURL, AttrIcon, AttrMeta:
		if n.Kind != domain.KindBookmark {
			return fmt.Errorf("%w: %s has no %s", domain.ErrStructuralViolation, n.Kind, p.Attr)
		}
		if p.Attr == AttrMeta && p.Key == "" {
			return &application.ValidationError{Field: "meta", Message: "metadata key is required"}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown attribute %d", application.ErrInvalidOperation, p.Attr)
	}
}

// applyPatch sets one attribute and returns the patch that restores the old value
func applyPatch(n *domain.Node, p Patch) Patch {
	value := p.Value
	if p.Unset {
		value = ""
	}

	switch p.Attr {
	case AttrTitle:
		old := Patch{Attr: AttrTitle, Value: n.Title}
		n.Title = value
		return old
	case AttrDescription:
		old := Patch{Attr: AttrDescription, Value: n.Description}
		n.Description = value
		return old
	case AttrURL:
		old := Patch{Attr: AttrURL, Value: n.URL}
		n.URL = value
		return old
	case AttrIcon:
		old := Patch{Attr: AttrIcon, Value: n.Icon}
		n.Icon = value
		return old
	default:
		prev, had := n.Meta[p.Key]
		old := Patch{Attr: AttrMeta, Key: p.Key, Value: prev, Unset: !had}
		if p.Unset {
			delete(n.Meta, p.Key)
			if len(n.Meta) == 0 {
				n.Meta = nil
			}
		} else {
			n.SetMeta(p.Key, value)
		}
		return old
	}
}

// NodeEditCommand changes a single free-text field, title or description,
// keeping the prior text as its inverse.
type NodeEditCommand struct {
	ed    *Editor
	at    domain.Address
	field Attr
	text  string
	old   string
}

// NewNodeEditCommand sets field of the node at the given address to text
func NewNodeEditCommand(ed *Editor, at domain.Address, field Attr, text string) *NodeEditCommand {
	return &NodeEditCommand{ed: ed, at: at.Clone(), field: field, text: text}
}

// NewRenameCommand sets a node's title
func NewRenameCommand(ed *Editor, at domain.Address, title string) *NodeEditCommand {
	return NewNodeEditCommand(ed, at, AttrTitle, title)
}

func (c *NodeEditCommand) Name() string {
	if c.field == AttrTitle {
		return "Rename"
	}
	return "Change Description"
}

func (c *NodeEditCommand) Execute() error {
	old, err := c.swap(c.text)
	if err != nil {
		return err
	}
	c.old = old
	return nil
}

func (c *NodeEditCommand) Unexecute() error {
	_, err := c.swap(c.old)
	return err
}

func (c *NodeEditCommand) AffectedAncestor() domain.Address {
	return c.at.Parent()
}

func (c *NodeEditCommand) swap(text string) (string, error) {
	var old string
	err := c.ed.Update(c.at, func(n *domain.Node) error {
		switch c.field {
		case AttrTitle:
			old, n.Title = n.Title, text
		case AttrDescription:
			old, n.Description = n.Description, text
		default:
			return fmt.Errorf("%w: %s is not a text field", application.ErrInvalidOperation, c.field)
		}
		return nil
	})
	return old, err
}

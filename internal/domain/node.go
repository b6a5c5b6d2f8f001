package domain

import "maps"

// Kind is the type of a document node
type Kind int

const (
	KindFolder Kind = iota
	KindBookmark
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindFolder:
		return "Folder"
	case KindBookmark:
		return "Bookmark"
	case KindSeparator:
		return "Separator"
	default:
		return "Unknown"
	}
}

// ParseKind is the inverse of Kind.String (case-sensitive)
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "Folder":
		return KindFolder, true
	case "Bookmark":
		return KindBookmark, true
	case "Separator":
		return KindSeparator, true
	default:
		return 0, false
	}
}

// Well-known metadata keys
const (
	MetaLastModified = "last_modified"
	MetaVisited      = "visited"
	MetaToolbar      = "toolbar"
)

// Node is one folder, bookmark or separator. A node is owned by the child list of
// its parent folder; it carries no parent pointer, so its position is always
// re-derived from the root.
type Node struct {
	Kind        Kind
	Title       string
	Description string

	// Bookmark only
	URL  string
	Icon string
	Meta map[string]string

	// Folder only
	Open     bool
	Children []*Node
}

// NewFolder creates an empty, closed folder
func NewFolder(title string) *Node {
	return &Node{Kind: KindFolder, Title: title}
}

// NewBookmark creates a bookmark pointing at url
func NewBookmark(title, url string) *Node {
	return &Node{Kind: KindBookmark, Title: title, URL: url}
}

// NewSeparator creates a separator
func NewSeparator() *Node {
	return &Node{Kind: KindSeparator}
}

// IsFolder reports whether the node may have children
func (n *Node) IsFolder() bool {
	return n.Kind == KindFolder
}

// Clone returns a deep copy of the node and its subtree
func (n *Node) Clone() *Node {
	out := *n
	out.Meta = maps.Clone(n.Meta)
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return &out
}

// Equal compares two subtrees node-for-node and attribute-for-attribute.
// A nil and an empty metadata map are considered equal.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind || n.Title != o.Title || n.Description != o.Description ||
		n.URL != o.URL || n.Icon != o.Icon || n.Open != o.Open {
		return false
	}
	if !maps.Equal(n.Meta, o.Meta) {
		return false
	}
	if len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// MetaValue returns a metadata value, or "" when unset
func (n *Node) MetaValue(key string) string {
	return n.Meta[key]
}

// SetMeta sets a metadata value, allocating the map on first use
func (n *Node) SetMeta(key, value string) {
	if n.Meta == nil {
		n.Meta = make(map[string]string)
	}
	n.Meta[key] = value
}

// indexOf returns the position of child c in n's children, or -1
func (n *Node) indexOf(c *Node) int {
	for i, child := range n.Children {
		if child == c {
			return i
		}
	}
	return -1
}

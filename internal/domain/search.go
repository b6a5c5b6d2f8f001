package domain

import "strings"

// Matches reports whether the node's title, URL or description contains query,
// ignoring case. Separators never match.
func (n *Node) Matches(query string) bool {
	if n.Kind == KindSeparator || query == "" {
		return false
	}
	q := FoldTitle(query)
	return strings.Contains(FoldTitle(n.Title), q) ||
		strings.Contains(FoldTitle(n.URL), q) ||
		strings.Contains(FoldTitle(n.Description), q)
}

// FindAll returns the addresses of every matching node in Address order
func (d *Document) FindAll(query string) []Address {
	var out []Address
	_ = d.Walk(func(a Address, n *Node) error {
		if n.Matches(query) {
			out = append(out, a)
		}
		return nil
	})
	return out
}

// FindNext returns the first match strictly after the given address in Address
// order, wrapping around to the start of the document.
func (d *Document) FindNext(query string, after Address) (Address, bool) {
	matches := d.FindAll(query)
	if len(matches) == 0 {
		return nil, false
	}
	for _, m := range matches {
		if Compare(m, after) > 0 {
			return m, true
		}
	}
	return matches[0], true
}

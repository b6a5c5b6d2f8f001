package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Address identifies a node by the child index taken at each depth from the root.
// The root address is empty. An Address is only meaningful at the instant it is
// computed: any structural edit at or before one of its components makes it stale.
type Address []int

// RootAddress returns the address of the document root
func RootAddress() Address {
	return Address{}
}

// ParseAddress parses the "/0/2/5" form produced by String.
// The leading slash is optional and "/" or "" denote the root.
func ParseAddress(s string) (Address, error) {
	s = strings.Trim(strings.TrimSpace(s), "/")
	if s == "" {
		return Address{}, nil
	}

	parts := strings.Split(s, "/")
	addr := make(Address, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		addr = append(addr, n)
	}
	return addr, nil
}

// MustParseAddress is ParseAddress for literals known to be valid
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String renders the address as "/0/2/5", or "/" for the root
func (a Address) String() string {
	if len(a) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, n := range a {
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// IsRoot reports whether the address denotes the root folder
func (a Address) IsRoot() bool {
	return len(a) == 0
}

// Depth returns the number of components
func (a Address) Depth() int {
	return len(a)
}

// Clone returns a copy that does not share storage with a
func (a Address) Clone() Address {
	out := make(Address, len(a))
	copy(out, a)
	return out
}

// Parent returns the address of the containing folder. The parent of the root is the root.
func (a Address) Parent() Address {
	if len(a) == 0 {
		return Address{}
	}
	return a[:len(a)-1].Clone()
}

// Position returns the node's index among its parent's children, or -1 for the root
func (a Address) Position() int {
	if len(a) == 0 {
		return -1
	}
	return a[len(a)-1]
}

// Child returns the address of the i-th child of a
func (a Address) Child(i int) Address {
	out := make(Address, len(a), len(a)+1)
	copy(out, a)
	return append(out, i)
}

// NextSibling increments the last component.
// The result is only valid if such a sibling exists in the live document.
func (a Address) NextSibling() Address {
	if len(a) == 0 {
		return Address{}
	}
	out := a.Clone()
	out[len(out)-1]++
	return out
}

// PreviousSibling decrements the last component.
// It returns false when a is a first child (or the root).
func (a Address) PreviousSibling() (Address, bool) {
	if len(a) == 0 || a[len(a)-1] == 0 {
		return nil, false
	}
	out := a.Clone()
	out[len(out)-1]--
	return out, true
}

// Equal reports whether both addresses have the same components
func (a Address) Equal(b Address) bool {
	return slices.Equal(a, b)
}

// IsAncestorOf reports whether a is a strict prefix of b
func (a Address) IsAncestorOf(b Address) bool {
	return len(a) < len(b) && slices.Equal(a, b[:len(a)])
}

// Contains reports whether b is a itself or lies inside a's subtree
func (a Address) Contains(b Address) bool {
	return a.Equal(b) || a.IsAncestorOf(b)
}

// Compare orders addresses component-wise. When one is a strict prefix of the
// other the shorter one, the ancestor, sorts first.
func Compare(a, b Address) int {
	return slices.Compare(a, b)
}

// CommonAncestor returns the longest common prefix of a and b
func CommonAncestor(a, b Address) Address {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i].Clone()
}

// SortDescending orders addresses deepest/last first, which is the order in
// which a set of nodes can be removed without shifting the ones not yet removed.
func SortDescending(addrs []Address) {
	slices.SortFunc(addrs, func(a, b Address) int {
		return Compare(b, a)
	})
}

// SortAscending orders addresses in document order
func SortAscending(addrs []Address) {
	slices.SortFunc(addrs, Compare)
}

// Outermost removes duplicates and every address nested inside another one of the set
func Outermost(addrs []Address) []Address {
	sorted := make([]Address, len(addrs))
	copy(sorted, addrs)
	SortAscending(sorted)

	var out []Address
	for _, a := range sorted {
		if len(out) > 0 && out[len(out)-1].Contains(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

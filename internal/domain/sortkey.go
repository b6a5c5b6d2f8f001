package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldTitle returns the case-folded form of s used for ordering and matching.
// A Caser keeps state, so one is created per call.
func FoldTitle(s string) string {
	return cases.Fold().String(s)
}

func kindRank(k Kind) int {
	if k == KindFolder {
		return 0
	}
	return 1
}

// CompareSortKey orders nodes for sorting: folders before bookmarks and
// separators, then by case-insensitive title.
func CompareSortKey(a, b *Node) int {
	if ra, rb := kindRank(a.Kind), kindRank(b.Kind); ra != rb {
		return ra - rb
	}
	return strings.Compare(FoldTitle(a.Title), FoldTitle(b.Title))
}

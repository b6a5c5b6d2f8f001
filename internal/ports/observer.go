package ports

import "bookmarked/internal/domain"

// TreeObserver is notified of every structural edit to a document.
// Begin and End calls are strictly paired and wrap the document mutation, so an
// observer sees the tree before the edit at Begin and after it at End.
type TreeObserver interface {
	// BeginInsert announces that rows first..last will appear under parent
	BeginInsert(parent domain.Address, first, last int)
	EndInsert()

	// BeginRemove announces that rows first..last under parent will be removed
	BeginRemove(parent domain.Address, first, last int)
	EndRemove()

	// BeginMove announces that srcRow under srcParent will move to dstRow under
	// dstParent. Both parents are given in pre-move coordinates; dstRow counts
	// positions in the destination after the source row has been removed.
	BeginMove(srcParent domain.Address, srcRow int, dstParent domain.Address, dstRow int)
	EndMove()

	// Changed reports that a node's attributes changed in place
	Changed(a domain.Address)

	// Reset reports that the whole document was replaced
	Reset()
}

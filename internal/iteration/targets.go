package iteration

import "bookmarked/internal/domain"

// Targets expands a selection into the bookmarks it covers, in address order.
// Folders contribute every bookmark below them; nested and repeated addresses
// are counted once. Addresses that do not resolve are ignored.
func Targets(doc *domain.Document, addrs []domain.Address) []*domain.Node {
	var out []*domain.Node
	for _, a := range domain.Outermost(addrs) {
		n, err := doc.Resolve(a)
		if err != nil {
			continue
		}
		if !n.IsFolder() {
			if n.Kind == domain.KindBookmark {
				out = append(out, n)
			}
			continue
		}
		_ = doc.WalkFrom(a, func(_ domain.Address, c *domain.Node) error {
			if c.Kind == domain.KindBookmark {
				out = append(out, c)
			}
			return nil
		})
	}
	return out
}

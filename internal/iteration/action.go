package iteration

import (
	"fmt"
	"strings"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// Action is the per-kind behavior of an iterator: which nodes it applies to and
// how pending and finished fetches are shown.
type Action interface {
	Name() string
	Applicable(n *domain.Node) bool
	Pending() string
	Complete(n *domain.Node, r ports.FetchResult) string
}

func isWebBookmark(n *domain.Node) bool {
	if n.Kind != domain.KindBookmark {
		return false
	}
	u := strings.ToLower(n.URL)
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}

// LinkCheck reports whether each bookmark's URL still answers
type LinkCheck struct{}

func (LinkCheck) Name() string { return "check links" }

func (LinkCheck) Applicable(n *domain.Node) bool { return isWebBookmark(n) }

func (LinkCheck) Pending() string { return "checking..." }

func (LinkCheck) Complete(_ *domain.Node, r ports.FetchResult) string {
	if r.Err == nil {
		return r.Status
	}
	if r.Status != "" {
		return r.Status
	}
	return fmt.Sprintf("error: %v", r.Err)
}

// IconRefresh looks up each bookmark's favicon. OnIcon, when set, is called
// with every icon found so the caller can store it.
type IconRefresh struct {
	OnIcon func(n *domain.Node, icon string)
}

func (IconRefresh) Name() string { return "refresh icons" }

func (IconRefresh) Applicable(n *domain.Node) bool { return isWebBookmark(n) }

func (IconRefresh) Pending() string { return "fetching icon..." }

func (a IconRefresh) Complete(n *domain.Node, r ports.FetchResult) string {
	if r.Err != nil {
		return fmt.Sprintf("no icon: %v", r.Err)
	}
	if r.Payload == "" {
		return "no icon"
	}
	if a.OnIcon != nil {
		a.OnIcon(n, r.Payload)
	}
	return "icon updated"
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"bookmarked/internal/adapters/tui/styles"
	"bookmarked/internal/domain"
)

// RenderHelpLine renders key bindings as "key desc" pairs separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a status message, red for errors
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RowState says how a tree row is highlighted
type RowState int

const (
	RowPlain RowState = iota
	RowSelected
	RowMarked
	RowMatch
)

// treePrefix is the expand marker in front of a row
func treePrefix(n *domain.Node) string {
	switch {
	case !n.IsFolder():
		return styles.TreeLeaf
	case n.Open:
		return styles.TreeExpanded
	default:
		return styles.TreeCollapsed
	}
}

// RenderNode renders one tree row: indent, expand marker, text in the kind's
// style, then the URL of a titled bookmark
func RenderNode(n *domain.Node, depth int, text string, state RowState) string {
	if text == "" {
		text = displayTitle(n)
	}

	style := styles.ForKind(n.Kind)
	switch state {
	case RowSelected:
		style = styles.NodeSelected
	case RowMarked:
		style = styles.NodeMarked
	case RowMatch:
		style = styles.SearchMatch
	}

	line := strings.Repeat("  ", depth) + styles.TreeBranch.Render(treePrefix(n)) + style.Render(text)
	if n.Kind == domain.KindBookmark && n.Title != "" {
		line += "  " + styles.URL.Render(n.URL)
	}
	return line
}

// statusFailed reports whether an iterator status means the fetch went wrong
func statusFailed(status string) bool {
	return strings.HasPrefix(status, "error") ||
		strings.HasPrefix(status, "4") ||
		strings.HasPrefix(status, "5")
}

// RenderStatus renders the status column text, red when the fetch failed
func RenderStatus(status string) string {
	if status == "" {
		return ""
	}
	if statusFailed(status) {
		return styles.StatusFailed.Render(status)
	}
	return styles.Status.Render(status)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Node adds one tree row followed by its status, if any
func (v *ViewBuilder) Node(n *domain.Node, depth int, text string, state RowState, status string) *ViewBuilder {
	line := RenderNode(n, depth, text, state)
	if status != "" {
		line += "  " + RenderStatus(status)
	}
	return v.Line(line)
}

// Activity adds the running iterators line
func (v *ViewBuilder) Activity(text string) *ViewBuilder {
	if text == "" {
		return v
	}
	v.b.WriteString("\n")
	return v.Line(styles.Status.Render(text))
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

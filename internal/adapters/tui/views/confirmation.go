package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bookmarked/internal/adapters/tui/styles"
	"bookmarked/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmedMsg is sent when the user accepts the prompt
type ConfirmedMsg struct {
	Target domain.Address
}

// ConfirmModel asks before deleting a node
type ConfirmModel struct {
	ViewState
	target domain.Address
	node   *domain.Node
	Keys   ConfirmKeyMap
}

// NewConfirmModel creates a confirmation view with default keys
func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{Keys: DefaultConfirmKeys}
}

// SetTarget sets the node the prompt is about
func (m *ConfirmModel) SetTarget(a domain.Address, n *domain.Node) {
	m.target = a.Clone()
	m.node = n
}

func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the prompt
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.Keys.Confirm):
			target := m.target
			return m, func() tea.Msg { return ConfirmedMsg{Target: target} }
		}
	}
	return m, nil
}

// View renders the prompt
func (m *ConfirmModel) View() string {
	return NewViewBuilder().
		Title("Delete").
		Line(RenderTargetInfo(m.node, "Delete")).
		BlankLine().
		Line(RenderConfirmPrompt("Delete this node?")).
		String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargetInfo renders information about the target node
func RenderTargetInfo(n *domain.Node, action string) string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(action + " " + strings.ToLower(n.Kind.String()) + ":"))
	b.WriteString("\n  ")
	switch n.Kind {
	case domain.KindFolder:
		c := domain.NewDocumentFromRoot(n).Count()
		fmt.Fprintf(&b, "%s (%d folders, %d bookmarks inside)", n.Title, c.Folders, c.Bookmarks)
	case domain.KindBookmark:
		b.WriteString(displayTitle(n))
		if n.Title != "" {
			b.WriteString("  ")
			b.WriteString(styles.URL.Render(n.URL))
		}
	default:
		b.WriteString("separator")
	}
	return b.String()
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bookmarked/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

var helpSections = []struct {
	title    string
	bindings []key.Binding
}{
	{"Navigation", []key.Binding{BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Left, BrowserKeys.Right, BrowserKeys.Enter, BrowserKeys.Open}},
	{"Editing", []key.Binding{BrowserKeys.AddBookmark, BrowserKeys.AddFolder, BrowserKeys.AddSep, BrowserKeys.Edit, BrowserKeys.Delete, BrowserKeys.Sort}},
	{"Moving", []key.Binding{BrowserKeys.MoveUp, BrowserKeys.MoveDown, BrowserKeys.Cut, BrowserKeys.Paste}},
	{"Clipboard", []key.Binding{BrowserKeys.CopyURL, BrowserKeys.PasteURL}},
	{"History", []key.Binding{BrowserKeys.Undo, BrowserKeys.Redo, BrowserKeys.Save}},
	{"Find", []key.Binding{BrowserKeys.Find, BrowserKeys.FindNext}},
	{"Network", []key.Binding{BrowserKeys.CheckLinks, BrowserKeys.Icons, BrowserKeys.Cancel}},
	{"General", []key.Binding{BrowserKeys.Help, BrowserKeys.Quit}},
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Bookmarks Help"))
	b.WriteString("\n\n")

	for _, s := range helpSections {
		b.WriteString(styles.InputLabel.Render(s.title))
		b.WriteString("\n")
		for _, k := range s.bindings {
			h := k.Help()
			b.WriteString(helpLine(h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedText.Render("Checks and icon lookups act on the selected bookmark, or on every bookmark inside the selected folder."))
	b.WriteString("\n\n")

	// Close hint
	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 14)) + styles.HelpDesc.Render(desc) + "\n"
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

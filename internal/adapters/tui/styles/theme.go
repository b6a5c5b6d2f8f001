package styles

import (
	"github.com/charmbracelet/lipgloss"

	"bookmarked/internal/domain"
)

// Palette
var (
	Accent  = lipgloss.Color("#7C3AED")
	Folder  = lipgloss.Color("#10B981")
	Muted   = lipgloss.Color("#6B7280")
	Pending = lipgloss.Color("#F59E0B")
	Broken  = lipgloss.Color("#EF4444")
	Link    = lipgloss.Color("#60A5FA")
	White   = lipgloss.Color("#FFFFFF")
	Black   = lipgloss.Color("#000000")
)

var (
	App = lipgloss.NewStyle().Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent)

	MutedText = lipgloss.NewStyle().Foreground(Muted)
)

// Rows in the bookmark tree
var (
	NodeFolder    = lipgloss.NewStyle().Foreground(Folder).Bold(true)
	NodeBookmark  = lipgloss.NewStyle()
	NodeSeparator = lipgloss.NewStyle().Foreground(Muted)

	NodeSelected = lipgloss.NewStyle().
			Background(Accent).
			Foreground(White).
			Bold(true)

	// cut, waiting for a paste
	NodeMarked = lipgloss.NewStyle().Foreground(Pending).Italic(true)

	// row matching the find query
	SearchMatch = lipgloss.NewStyle().Background(Pending).Foreground(Black)

	URL = lipgloss.NewStyle().Foreground(Link)

	TreeBranch    = lipgloss.NewStyle().Foreground(Muted)
	TreeExpanded  = "▼ "
	TreeCollapsed = "▶ "
	TreeLeaf      = "  "
)

// Link check and icon refresh status column
var (
	Status       = lipgloss.NewStyle().Foreground(Pending)
	StatusFailed = lipgloss.NewStyle().Foreground(Broken)
)

// Forms, prompts and help
var (
	InputLabel = lipgloss.NewStyle().Foreground(Folder).Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Folder).
			Padding(0, 1)

	HelpKey       = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	HelpDesc      = lipgloss.NewStyle().Foreground(Muted)
	HelpSeparator = lipgloss.NewStyle().Foreground(Muted).SetString(" • ")

	Success  = lipgloss.NewStyle().Foreground(Folder).Bold(true)
	ErrorMsg = lipgloss.NewStyle().Foreground(Broken).Bold(true)
)

// ForKind returns the row style for a node kind
func ForKind(k domain.Kind) lipgloss.Style {
	switch k {
	case domain.KindFolder:
		return NodeFolder
	case domain.KindSeparator:
		return NodeSeparator
	default:
		return NodeBookmark
	}
}

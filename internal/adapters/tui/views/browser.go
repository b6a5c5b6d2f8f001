package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookmarked/internal/adapters/tui/styles"
	"bookmarked/internal/domain"
	"bookmarked/internal/projection"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	Open        key.Binding
	AddBookmark key.Binding
	AddFolder   key.Binding
	AddSep      key.Binding
	Edit        key.Binding
	Delete      key.Binding
	MoveUp      key.Binding
	MoveDown    key.Binding
	Cut         key.Binding
	Paste       key.Binding
	CopyURL     key.Binding
	PasteURL    key.Binding
	Sort        key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Find        key.Binding
	FindNext    key.Binding
	CheckLinks  key.Binding
	Icons       key.Binding
	Cancel      key.Binding
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "collapse")),
	Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "expand")),
	Enter:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle/open")),
	Open:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
	AddBookmark: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add bookmark")),
	AddFolder:   key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add folder")),
	AddSep:      key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "add separator")),
	Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
	MoveUp:      key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:    key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	Cut:         key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "cut")),
	Paste:       key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "paste after")),
	CopyURL:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy url")),
	PasteURL:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "bookmark clipboard url")),
	Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort folder")),
	Undo:        key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
	Redo:        key.NewBinding(key.WithKeys("ctrl+r", "U"), key.WithHelp("ctrl+r", "redo")),
	Find:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
	FindNext:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
	CheckLinks:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check links")),
	Icons:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "refresh icons")),
	Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop checks")),
	Save:        key.NewBinding(key.WithKeys("w", "ctrl+s"), key.WithHelp("w", "save")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Action is an edit or command the browser asks the app to carry out on the
// selected row
type Action int

const (
	ActionExpand Action = iota
	ActionCollapse
	ActionOpenURL
	ActionAddBookmark
	ActionAddFolder
	ActionAddSeparator
	ActionEdit
	ActionDelete
	ActionMoveUp
	ActionMoveDown
	ActionPaste
	ActionCopyURL
	ActionPasteURL
	ActionSort
	ActionUndo
	ActionRedo
	ActionFind
	ActionCheckLinks
	ActionRefreshIcons
	ActionCancelAll
	ActionSave
	ActionQuit
)

// ActionMsg carries an Action for the row under the cursor
type ActionMsg struct {
	Action Action
}

func act(a Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg{Action: a} }
}

// BrowserModel shows the projection as an indented list. The cursor is a
// persistent index, so it stays on the same node while rows are inserted,
// removed or moved around it.
type BrowserModel struct {
	ViewState
	proj   *projection.Model
	window *Window

	rows   []projection.Row
	cursor projection.PersistentIndex
	row    int // cursor row at the last refresh, used if the cursor node is removed

	mark    projection.PersistentIndex
	hasMark bool

	finding bool
	find    textinput.Model
	query   string

	// Title shown above the tree, and a status line below it
	Title    string
	Activity string
	Dirty    bool
}

// NewBrowserModel creates a browser over proj
func NewBrowserModel(proj *projection.Model) *BrowserModel {
	find := textinput.New()
	find.Placeholder = "title, url or description"
	find.CharLimit = 200
	find.Prompt = "/ "

	m := &BrowserModel{
		proj:   proj,
		window: NewWindow(20),
		find:   find,
		Title:  "Bookmarks",
	}
	m.Refresh()
	return m
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return nil
}

// Refresh recomputes the visible rows after the document or projection changed
func (m *BrowserModel) Refresh() {
	m.rows = m.proj.Flatten(nil)
	if i, ok := m.resolveCursor(); ok {
		m.row = i
		return
	}
	// The cursor node is gone: stay on the same line
	if len(m.rows) == 0 {
		m.setCursor(-1)
		return
	}
	m.setCursor(min(max(m.row, 0), len(m.rows)-1))
}

// resolveCursor finds the row of the cursor node. When the node sits in a
// collapsed folder the cursor moves to its nearest visible ancestor.
func (m *BrowserModel) resolveCursor() (int, bool) {
	idx, ok := m.proj.Lookup(m.cursor)
	if !ok {
		return 0, false
	}
	target := m.proj.Node(idx)
	for idx.IsValid() && idx.Row() >= 0 {
		n := m.proj.Node(idx)
		for i, r := range m.rows {
			if r.Node != n {
				continue
			}
			if n != target {
				m.setCursor(i)
			}
			return i, true
		}
		idx = m.proj.Parent(idx)
	}
	return 0, false
}

func (m *BrowserModel) setCursor(i int) {
	m.proj.Release(m.cursor)
	m.cursor = projection.PersistentIndex{}
	m.row = i
	if i >= 0 && i < len(m.rows) {
		m.cursor = m.proj.Persist(m.rows[i].Index)
	}
}

// Selected returns the node under the cursor and its address
func (m *BrowserModel) Selected() (*domain.Node, domain.Address, bool) {
	if m.row < 0 || m.row >= len(m.rows) {
		return nil, nil, false
	}
	r := m.rows[m.row]
	return r.Node, m.proj.AddressOf(r.Index), true
}

// Select moves the cursor to the node at a
func (m *BrowserModel) Select(a domain.Address) {
	idx := m.proj.IndexFor(a)
	if !idx.IsValid() {
		return
	}
	m.proj.Release(m.cursor)
	m.cursor = m.proj.Persist(idx)
	m.Refresh()
}

// MarkSelected remembers the selected node for a later paste
func (m *BrowserModel) MarkSelected() bool {
	if m.row < 0 || m.row >= len(m.rows) {
		return false
	}
	m.ClearMark()
	m.mark = m.proj.Persist(m.rows[m.row].Index)
	m.hasMark = true
	return true
}

// Marked returns the address of the cut node, if it still exists
func (m *BrowserModel) Marked() (domain.Address, bool) {
	if !m.hasMark {
		return nil, false
	}
	idx, ok := m.proj.Lookup(m.mark)
	if !ok {
		m.ClearMark()
		return nil, false
	}
	return m.proj.AddressOf(idx), true
}

// ClearMark forgets the cut node
func (m *BrowserModel) ClearMark() {
	if m.hasMark {
		m.proj.Release(m.mark)
	}
	m.mark = projection.PersistentIndex{}
	m.hasMark = false
}

func (m *BrowserModel) markedNode() *domain.Node {
	if !m.hasMark {
		return nil
	}
	idx, ok := m.proj.Lookup(m.mark)
	if !ok {
		return nil
	}
	return m.proj.Node(idx)
}

// Query returns the last find query
func (m *BrowserModel) Query() string {
	return m.query
}

// Finding reports whether the find prompt has focus
func (m *BrowserModel) Finding() bool {
	return m.finding
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.finding {
			return m, m.updateFind(msg)
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *BrowserModel) updateFind(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.finding = false
		m.find.Blur()
		return nil
	case tea.KeyEnter:
		m.finding = false
		m.find.Blur()
		m.query = strings.TrimSpace(m.find.Value())
		if m.query == "" {
			return nil
		}
		return act(ActionFind)
	}
	var cmd tea.Cmd
	m.find, cmd = m.find.Update(msg)
	return cmd
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node, _, ok := m.Selected()

	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return act(ActionQuit)

	case key.Matches(msg, BrowserKeys.Up):
		if m.row > 0 {
			m.setCursor(m.row - 1)
		}
	case key.Matches(msg, BrowserKeys.Down):
		if m.row < len(m.rows)-1 {
			m.setCursor(m.row + 1)
		}

	case key.Matches(msg, BrowserKeys.Left):
		if !ok {
			return nil
		}
		if node.IsFolder() && node.Open {
			return act(ActionCollapse)
		}
		// Go to parent
		if parent := m.proj.Parent(m.rows[m.row].Index); parent.IsValid() && parent.Row() >= 0 {
			m.proj.Release(m.cursor)
			m.cursor = m.proj.Persist(parent)
			m.Refresh()
		}

	case key.Matches(msg, BrowserKeys.Right):
		if ok && node.IsFolder() && !node.Open {
			return act(ActionExpand)
		}

	case key.Matches(msg, BrowserKeys.Enter):
		if !ok {
			return nil
		}
		switch {
		case node.IsFolder() && node.Open:
			return act(ActionCollapse)
		case node.IsFolder():
			return act(ActionExpand)
		case node.Kind == domain.KindBookmark:
			return act(ActionOpenURL)
		}

	case key.Matches(msg, BrowserKeys.Find):
		m.finding = true
		m.find.SetValue(m.query)
		m.find.CursorEnd()
		return m.find.Focus()

	case key.Matches(msg, BrowserKeys.Cut):
		if m.MarkSelected() {
			m.SetMessage(fmt.Sprintf("Cut %q, press p to paste", displayTitle(node)), false)
		}

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }

	default:
		for _, b := range []struct {
			binding key.Binding
			action  Action
		}{
			{BrowserKeys.Open, ActionOpenURL},
			{BrowserKeys.AddBookmark, ActionAddBookmark},
			{BrowserKeys.AddFolder, ActionAddFolder},
			{BrowserKeys.AddSep, ActionAddSeparator},
			{BrowserKeys.Edit, ActionEdit},
			{BrowserKeys.Delete, ActionDelete},
			{BrowserKeys.MoveUp, ActionMoveUp},
			{BrowserKeys.MoveDown, ActionMoveDown},
			{BrowserKeys.Paste, ActionPaste},
			{BrowserKeys.CopyURL, ActionCopyURL},
			{BrowserKeys.PasteURL, ActionPasteURL},
			{BrowserKeys.Sort, ActionSort},
			{BrowserKeys.Undo, ActionUndo},
			{BrowserKeys.Redo, ActionRedo},
			{BrowserKeys.FindNext, ActionFind},
			{BrowserKeys.CheckLinks, ActionCheckLinks},
			{BrowserKeys.Icons, ActionRefreshIcons},
			{BrowserKeys.Cancel, ActionCancelAll},
			{BrowserKeys.Save, ActionSave},
		} {
			if key.Matches(msg, b.binding) {
				return act(b.action)
			}
		}
	}
	return nil
}

func displayTitle(n *domain.Node) string {
	if n == nil {
		return ""
	}
	if n.Title == "" && n.Kind == domain.KindBookmark {
		return n.URL
	}
	return n.Title
}

// View renders the browser
func (m *BrowserModel) View() string {
	title := m.Title
	if m.Dirty {
		title += " ●"
	}
	v := NewViewBuilder().Line(styles.Title.Render(title))

	// header, footer and padding
	m.window.SetSize(m.Height - 9)
	if len(m.rows) == 0 {
		v.Muted("  No bookmarks yet. Press a to add one.")
	}
	start, end := m.window.Follow(m.row, len(m.rows))
	marked := m.markedNode()
	for i := start; i < end; i++ {
		r := m.rows[i]
		v.Node(r.Node, r.Depth, m.proj.Data(r.Index), m.rowState(r, i, marked), m.status(r))
	}

	if m.finding {
		v.BlankLine().Line(m.find.View())
	}
	v.Activity(m.Activity)
	if m.Message != "" {
		v.BlankLine().Line(RenderMessage(m.Message, m.MessageErr))
	}

	return v.BlankLine().Help(
		BrowserKeys.AddBookmark,
		BrowserKeys.Edit,
		BrowserKeys.Delete,
		BrowserKeys.Undo,
		BrowserKeys.Find,
		BrowserKeys.CheckLinks,
		BrowserKeys.Help,
		BrowserKeys.Quit,
	).String()
}

func (m *BrowserModel) rowState(r projection.Row, i int, marked *domain.Node) RowState {
	switch {
	case i == m.row:
		return RowSelected
	case m.query != "" && r.Node.Matches(m.query):
		return RowMatch
	case r.Node == marked:
		return RowMarked
	}
	return RowPlain
}

// status is the row's text in the status column
func (m *BrowserModel) status(r projection.Row) string {
	return m.proj.Data(m.proj.Index(r.Index.Row(), projection.ColumnStatus, m.proj.Parent(r.Index)))
}

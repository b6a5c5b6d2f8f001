package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
	"bookmarked/internal/projection"
)

func TestWindow_Follow(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		offset    int
		cursor    int
		total     int
		wantStart int
		wantEnd   int
	}{
		{"fits", 10, 0, 3, 5, 0, 5},
		{"cursor inside", 5, 0, 4, 20, 0, 5},
		{"scroll down one", 5, 0, 5, 20, 1, 6},
		{"scroll up", 5, 10, 7, 20, 7, 12},
		{"clamped at end", 5, 18, 19, 20, 15, 20},
		{"shrunk total", 5, 15, 2, 8, 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.size)
			w.offset = tt.offset
			start, end := w.Follow(tt.cursor, tt.total)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestWindow_DefaultSize(t *testing.T) {
	w := NewWindow(0)
	_, end := w.Follow(0, 100)
	assert.Equal(t, 10, end)
}

func newBrowser(t *testing.T) (*commands.Editor, *BrowserModel) {
	t.Helper()
	doc := domain.NewDocument()
	work := domain.NewFolder("Work")
	work.Open = true
	work.Children = []*domain.Node{
		domain.NewBookmark("Wiki", "https://wiki.example.com"),
		domain.NewBookmark("CI", "https://ci.example.com"),
	}
	doc.Root().Children = []*domain.Node{
		work,
		domain.NewBookmark("News", "https://news.example.com"),
	}
	ed := commands.NewEditor(doc)
	proj := projection.New(ed)
	ed.AddObserver(proj)
	m := NewBrowserModel(proj)
	m.SetSize(80, 30)
	return ed, m
}

func selectedTitle(m *BrowserModel) string {
	n, _, ok := m.Selected()
	if !ok {
		return ""
	}
	return n.Title
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowser_CursorFollowsNode(t *testing.T) {
	ed, m := newBrowser(t)

	m.Update(runes("j"))
	m.Update(runes("j"))
	require.Equal(t, "CI", selectedTitle(m))

	// a node inserted above pushes the cursor row down
	require.NoError(t, commands.NewCreateBookmark(ed, domain.Address{0}, "Top", "https://top.example.com").Execute())
	m.Refresh()
	assert.Equal(t, "CI", selectedTitle(m))
	_, addr, _ := m.Selected()
	assert.Equal(t, domain.Address{1, 1}, addr)

	// moving the node elsewhere takes the cursor with it
	require.NoError(t, commands.NewMoveCommand(ed, domain.Address{1, 1}, domain.Address{3}).Execute())
	m.Refresh()
	assert.Equal(t, "CI", selectedTitle(m))
	_, addr, _ = m.Selected()
	assert.Equal(t, domain.Address{3}, addr)
}

func TestBrowser_CursorMovesToVisibleAncestor(t *testing.T) {
	ed, m := newBrowser(t)

	m.Update(runes("j"))
	require.Equal(t, "Wiki", selectedTitle(m))

	require.NoError(t, ed.SetOpen(domain.Address{0}, false))
	m.Refresh()
	assert.Equal(t, "Work", selectedTitle(m))
}

func TestBrowser_RemovedCursorStaysOnLine(t *testing.T) {
	ed, m := newBrowser(t)

	m.Update(runes("j"))
	m.Update(runes("j"))
	require.NoError(t, commands.NewDeleteCommand(ed, domain.Address{0, 1}).Execute())
	m.Refresh()
	assert.Equal(t, "News", selectedTitle(m))
}

func TestBrowser_KeysEmitActions(t *testing.T) {
	tests := []struct {
		key  string
		want Action
	}{
		{"a", ActionAddBookmark},
		{"A", ActionAddFolder},
		{"d", ActionDelete},
		{"J", ActionMoveDown},
		{"u", ActionUndo},
		{"n", ActionFind},
		{"c", ActionCheckLinks},
		{"q", ActionQuit},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, m := newBrowser(t)
			_, cmd := m.Update(runes(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, ActionMsg{Action: tt.want}, cmd())
		})
	}
}

func TestBrowser_LeftOnOpenFolderCollapses(t *testing.T) {
	_, m := newBrowser(t)
	_, cmd := m.Update(runes("h"))
	require.NotNil(t, cmd)
	assert.Equal(t, ActionMsg{Action: ActionCollapse}, cmd())
}

func TestBrowser_CutMarksRow(t *testing.T) {
	_, m := newBrowser(t)
	m.Update(runes("j"))
	m.Update(runes("x"))

	a, ok := m.Marked()
	require.True(t, ok)
	assert.Equal(t, domain.Address{0, 0}, a)
	assert.Contains(t, m.Message, "Wiki")

	m.ClearMark()
	_, ok = m.Marked()
	assert.False(t, ok)
}

func TestBrowser_ViewShowsRows(t *testing.T) {
	_, m := newBrowser(t)
	out := m.View()
	for _, s := range []string{"Work", "Wiki", "CI", "News", "https://news.example.com"} {
		assert.Contains(t, out, s)
	}

	empty := NewBrowserModel(projection.New(commands.NewEditor(domain.NewDocument())))
	assert.Contains(t, empty.View(), "No bookmarks yet")
}

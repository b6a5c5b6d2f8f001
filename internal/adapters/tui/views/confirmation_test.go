package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
)

var (
	_ tea.Model = (*BrowserModel)(nil)
	_ tea.Model = (*FormModel)(nil)
	_ tea.Model = (*ConfirmModel)(nil)
	_ tea.Model = (*HelpModel)(nil)
)

func TestConfirmModel(t *testing.T) {
	folder := domain.NewFolder("Work")
	folder.Children = []*domain.Node{domain.NewBookmark("Wiki", "https://wiki.example.com")}

	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"yes", runes("y"), ConfirmedMsg{Target: domain.Address{0, 1}}},
		{"no", runes("n"), SwitchToBrowserMsg{}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, SwitchToBrowserMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConfirmModel()
			require.Nil(t, m.Init())
			m.SetTarget(domain.Address{0, 1}, folder)

			_, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}

	m := NewConfirmModel()
	m.SetTarget(domain.Address{0, 1}, folder)
	_, cmd := m.Update(runes("q"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Work (0 folders, 1 bookmarks inside)")
}

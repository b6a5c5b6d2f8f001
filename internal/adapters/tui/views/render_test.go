package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bookmarked/internal/domain"
)

func TestRenderNode(t *testing.T) {
	closed := domain.NewFolder("Work")
	open := domain.NewFolder("News")
	open.Open = true

	tests := []struct {
		name  string
		node  *domain.Node
		depth int
		text  string
		want  []string
		not   []string
	}{
		{"closed folder", closed, 0, "Work", []string{"▶ ", "Work"}, nil},
		{"open folder", open, 1, "News", []string{"  ▼ ", "News"}, nil},
		{"titled bookmark", domain.NewBookmark("Go", "https://go.dev"), 2, "Go", []string{"Go", "https://go.dev"}, []string{"▶"}},
		{"untitled bookmark shows url once", domain.NewBookmark("", "https://go.dev"), 0, "", []string{"https://go.dev"}, nil},
		{"separator", domain.NewSeparator(), 0, "────", []string{"────"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderNode(tt.node, tt.depth, tt.text, RowPlain)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.not {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestRenderStatus(t *testing.T) {
	assert.Equal(t, "", RenderStatus(""))
	assert.Contains(t, RenderStatus("200 OK"), "200 OK")
	assert.True(t, statusFailed("404 Not Found"))
	assert.True(t, statusFailed("503 Service Unavailable"))
	assert.True(t, statusFailed("error: timeout"))
	assert.False(t, statusFailed("checking..."))
	assert.False(t, statusFailed("301 Moved Permanently"))
}

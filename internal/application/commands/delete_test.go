package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
)

func TestDeleteCommand_FolderRestoresSubtree(t *testing.T) {
	doc := sampleDoc()
	before := cloneDoc(doc)
	ed, rec := newTestEditor(t, doc)

	work := doc.Root().Children[0]
	cmd := NewDeleteCommand(ed, domain.Address{0})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"News", "Empty"}, titles(doc.Root()))
	assert.False(t, doc.Contains(work))

	require.NoError(t, cmd.Unexecute())
	assert.True(t, before.Root().Equal(doc.Root()))
	assert.Same(t, work, doc.Root().Children[0], "the original node comes back, not a copy")
	assert.Empty(t, rec.open)

	// Work, Jira, separator, Docs, Go, Rust: one remove each way
	assert.Equal(t, 6, rec.count("remove"))
	assert.Equal(t, 6, rec.count("insert"))

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"News", "Empty"}, titles(doc.Root()))
}

func TestDeleteCommand_Rejections(t *testing.T) {
	ed, _ := newTestEditor(t, sampleDoc())

	assert.ErrorIs(t, NewDeleteCommand(ed, domain.RootAddress()).Execute(), domain.ErrStructuralViolation)
	assert.ErrorIs(t, NewDeleteCommand(ed, domain.Address{0, 9}).Execute(), domain.ErrAddressNotFound)
}

func TestNewDeleteMany_AnyOrder(t *testing.T) {
	tests := []struct {
		name  string
		addrs []domain.Address
	}{
		{name: "ascending", addrs: []domain.Address{{0, 1}, {0, 3}}},
		{name: "descending", addrs: []domain.Address{{0, 3}, {0, 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := domain.NewDocument()
			f := domain.NewFolder("F")
			for _, title := range []string{"a", "b", "c", "d"} {
				f.Children = append(f.Children, domain.NewBookmark(title, "https://"+title+".example"))
			}
			doc.Root().Children = []*domain.Node{f}
			before := cloneDoc(doc)
			ed, _ := newTestEditor(t, doc)

			m := NewDeleteMany(ed, tt.addrs)
			require.NoError(t, m.Execute())
			assert.Equal(t, []string{"a", "c"}, titles(f))

			require.NoError(t, m.Unexecute())
			assert.True(t, before.Root().Equal(doc.Root()))
		})
	}
}

func TestNewDeleteMany_DropsNested(t *testing.T) {
	doc := sampleDoc()
	ed, _ := newTestEditor(t, doc)

	m := NewDeleteMany(ed, []domain.Address{{0, 2, 0}, {0}, {0, 0}, {1}, {0}})
	assert.Equal(t, 2, m.Len())
	require.NoError(t, m.Execute())
	assert.Equal(t, []string{"Empty"}, titles(doc.Root()))

	require.NoError(t, m.Unexecute())
	assert.True(t, sampleDoc().Root().Equal(doc.Root()))
}

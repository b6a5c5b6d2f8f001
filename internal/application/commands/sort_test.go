package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
)

func folderOf(title string, children ...*domain.Node) *domain.Node {
	f := domain.NewFolder(title)
	f.Children = children
	return f
}

func bm(title string) *domain.Node {
	return domain.NewBookmark(title, "https://example.com/"+title)
}

func docWith(children ...*domain.Node) *domain.Document {
	doc := domain.NewDocument()
	doc.Root().Children = children
	return doc
}

func TestSortCommand(t *testing.T) {
	tests := []struct {
		name  string
		nodes func() []*domain.Node
		want  []string
		moves int
	}{
		{
			name:  "folders first then titles",
			nodes: func() []*domain.Node { return []*domain.Node{bm("b.txt"), folderOf("FolderA"), bm("a.txt")} },
			want:  []string{"FolderA", "a.txt", "b.txt"},
			moves: 2,
		},
		{
			name:  "one out of place at the end",
			nodes: func() []*domain.Node { return []*domain.Node{bm("b"), bm("c"), bm("d"), bm("e"), bm("a")} },
			want:  []string{"a", "b", "c", "d", "e"},
			moves: 1,
		},
		{
			name:  "one swapped pair",
			nodes: func() []*domain.Node { return []*domain.Node{bm("a"), bm("b"), bm("d"), bm("c")} },
			want:  []string{"a", "b", "c", "d"},
			moves: 1,
		},
		{
			name:  "already sorted",
			nodes: func() []*domain.Node { return []*domain.Node{folderOf("x"), bm("a"), bm("b")} },
			want:  []string{"x", "a", "b"},
			moves: 0,
		},
		{
			name:  "case-insensitive and stable",
			nodes: func() []*domain.Node { return []*domain.Node{bm("beta"), bm("Same"), bm("ALPHA"), bm("same")} },
			want:  []string{"ALPHA", "beta", "Same", "same"},
			moves: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := docWith(folderOf("F", tt.nodes()...))
			before := cloneDoc(doc)
			ed, _ := newTestEditor(t, doc)

			cmd := NewSortCommand(ed, domain.Address{0})
			require.NoError(t, cmd.Execute())
			f := doc.Root().Children[0]
			assert.Equal(t, tt.want, titles(f))
			assert.Equal(t, tt.moves, cmd.Moves())

			after := doc.Root().Clone()
			require.NoError(t, cmd.Unexecute())
			assert.True(t, before.Root().Equal(doc.Root()))

			require.NoError(t, cmd.Execute())
			assert.True(t, after.Equal(doc.Root()))
			assert.Equal(t, tt.moves, cmd.Moves(), "redo replays the recorded moves")
		})
	}
}

func TestSortCommand_NotAFolder(t *testing.T) {
	ed, _ := newTestEditor(t, sampleDoc())
	err := NewSortCommand(ed, domain.Address{1}).Execute()
	assert.ErrorIs(t, err, domain.ErrStructuralViolation)
}

func TestRecursiveSortCommand(t *testing.T) {
	doc := docWith(
		bm("zeta"),
		folderOf("Outer",
			bm("y"),
			folderOf("Inner", bm("2"), bm("1")),
			bm("x"),
		),
		bm("alpha"),
	)
	before := cloneDoc(doc)
	ed, _ := newTestEditor(t, doc)

	cmd := NewRecursiveSort(ed, domain.RootAddress())
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 3, cmd.Folders())

	root := doc.Root()
	assert.Equal(t, []string{"Outer", "alpha", "zeta"}, titles(root))
	outer := root.Children[0]
	assert.Equal(t, []string{"Inner", "x", "y"}, titles(outer))
	assert.Equal(t, []string{"1", "2"}, titles(outer.Children[0]))

	after := root.Clone()
	require.NoError(t, cmd.Unexecute())
	assert.True(t, before.Root().Equal(doc.Root()))

	require.NoError(t, cmd.Execute())
	assert.True(t, after.Equal(doc.Root()))
}

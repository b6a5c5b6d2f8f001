package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
)

func importedNodes() []*domain.Node {
	return []*domain.Node{
		bm("imported-1"),
		folderOf("imported-folder", bm("imported-2")),
	}
}

func TestImportCommand_IntoFolder(t *testing.T) {
	doc := sampleDoc()
	before := cloneDoc(doc)
	ed, _ := newTestEditor(t, doc)

	nodes := importedNodes()
	cmd := NewImportCommand(ed, ImportIntoFolder, domain.Address{3}, "Imported", nodes)
	nodes[0].Title = "changed after the command was built"

	require.NoError(t, cmd.Execute())
	f := doc.Root().Children[3]
	assert.Equal(t, "Imported", f.Title)
	assert.Equal(t, []string{"imported-1", "imported-folder"}, titles(f))
	assert.Equal(t, domain.RootAddress(), cmd.AffectedAncestor())

	require.NoError(t, cmd.Unexecute())
	assert.True(t, before.Root().Equal(doc.Root()))
}

func TestImportCommand_Replace(t *testing.T) {
	doc := sampleDoc()
	before := cloneDoc(doc)
	ed, _ := newTestEditor(t, doc)

	cmd := NewImportCommand(ed, ImportReplace, nil, "", importedNodes())
	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"imported-1", "imported-folder"}, titles(doc.Root()))

	after := doc.Root().Clone()
	require.NoError(t, cmd.Unexecute())
	assert.True(t, before.Root().Equal(doc.Root()))

	require.NoError(t, cmd.Execute())
	assert.True(t, after.Equal(doc.Root()))
}

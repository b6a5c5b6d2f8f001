package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bookmarked/internal/application"
	"bookmarked/internal/domain"
)

func newTestHistory(t *testing.T, opts ...HistoryOption) *History {
	t.Helper()
	return NewHistory(append([]HistoryOption{WithLogger(zaptest.NewLogger(t))}, opts...)...)
}

func TestHistory_UndoRedo(t *testing.T) {
	doc := sampleDoc()
	ed, _ := newTestEditor(t, doc)
	h := newTestHistory(t)

	assert.ErrorIs(t, h.Undo(), application.ErrNothingToUndo)
	assert.ErrorIs(t, h.Redo(), application.ErrNothingToRedo)

	require.NoError(t, h.Execute(NewCreateFolder(ed, domain.Address{0}, "A")))
	require.NoError(t, h.Execute(NewRenameCommand(ed, domain.Address{0}, "B")))
	assert.Equal(t, "Rename", h.UndoName())
	assert.Equal(t, []string{"B", "Work", "News", "Empty"}, titles(doc.Root()))

	require.NoError(t, h.Undo())
	assert.Equal(t, "A", doc.Root().Children[0].Title)
	assert.Equal(t, "Rename", h.RedoName())

	require.NoError(t, h.Undo())
	assert.True(t, sampleDoc().Root().Equal(doc.Root()))
	assert.False(t, h.CanUndo())

	require.NoError(t, h.Redo())
	require.NoError(t, h.Redo())
	assert.Equal(t, "B", doc.Root().Children[0].Title)
	assert.False(t, h.CanRedo())
}

func TestHistory_NewCommandDiscardsRedoTail(t *testing.T) {
	ed, _ := newTestEditor(t, sampleDoc())
	h := newTestHistory(t)

	require.NoError(t, h.Execute(NewCreateSeparator(ed, domain.Address{0})))
	require.NoError(t, h.Execute(NewCreateSeparator(ed, domain.Address{0})))
	require.NoError(t, h.Undo())
	assert.True(t, h.CanRedo())

	require.NoError(t, h.Execute(NewRenameCommand(ed, domain.Address{1}, "Office")))
	assert.False(t, h.CanRedo())
	assert.Equal(t, 2, h.Len())
}

func TestHistory_FailedCommandIsNotRecorded(t *testing.T) {
	doc := sampleDoc()
	ed, _ := newTestEditor(t, doc)
	h := newTestHistory(t)

	err := h.Execute(NewDeleteCommand(ed, domain.Address{5}))
	require.Error(t, err)

	var cmdErr *application.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "Delete", cmdErr.Command)
	assert.True(t, application.IsStaleReference(err))
	assert.Zero(t, h.Len())
	assert.False(t, h.Dirty())
}

func TestHistory_Limit(t *testing.T) {
	doc := sampleDoc()
	ed, _ := newTestEditor(t, doc)
	h := newTestHistory(t, WithLimit(2))

	for _, title := range []string{"one", "two", "three"} {
		require.NoError(t, h.Execute(NewRenameCommand(ed, domain.Address{1}, title)))
	}
	assert.Equal(t, 2, h.Len())

	require.NoError(t, h.Undo())
	require.NoError(t, h.Undo())
	assert.ErrorIs(t, h.Undo(), application.ErrNothingToUndo)
	assert.Equal(t, "one", doc.Root().Children[1].Title)
	assert.True(t, h.Dirty(), "the saved state fell off the history")
}

func TestHistory_DirtyTracking(t *testing.T) {
	ed, _ := newTestEditor(t, sampleDoc())
	h := newTestHistory(t)

	var changes []bool
	h.OnDirtyChanged(func(d bool) { changes = append(changes, d) })

	assert.False(t, h.Dirty())
	require.NoError(t, h.Execute(NewCreateSeparator(ed, domain.Address{0})))
	assert.True(t, h.Dirty())
	require.NoError(t, h.Execute(NewCreateSeparator(ed, domain.Address{0})))

	h.MarkClean()
	assert.False(t, h.Dirty())

	require.NoError(t, h.Undo())
	assert.True(t, h.Dirty())
	require.NoError(t, h.Redo())
	assert.False(t, h.Dirty(), "returning to the saved state is clean again")

	require.NoError(t, h.Undo())
	require.NoError(t, h.Execute(NewRenameCommand(ed, domain.Address{0}, "x")))
	assert.True(t, h.Dirty())
	require.NoError(t, h.Undo())
	assert.True(t, h.Dirty(), "the saved state was discarded with the redo tail")

	h.Clear()
	assert.False(t, h.Dirty())
	assert.Zero(t, h.Len())

	assert.Equal(t, []bool{true, false, true, false, true, false}, changes)
}

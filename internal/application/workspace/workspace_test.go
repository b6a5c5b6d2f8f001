package workspace

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
)

// memStore keeps the last saved document in memory
type memStore struct {
	doc     *domain.Document
	saves   int
	savedAt time.Time
	loadErr error
	closed  bool
}

func (s *memStore) SavedAt(context.Context) (time.Time, error) {
	return s.savedAt, nil
}

func (s *memStore) Load(context.Context) (*domain.Document, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	if s.doc == nil {
		return domain.NewDocument(), nil
	}
	return domain.NewDocumentFromRoot(s.doc.Root().Clone()), nil
}

func (s *memStore) Save(_ context.Context, doc *domain.Document) error {
	s.doc = domain.NewDocumentFromRoot(doc.Root().Clone())
	s.saves++
	s.savedAt = time.Unix(int64(s.saves), 0)
	return nil
}

func (s *memStore) Close() error {
	s.closed = true
	return nil
}

func openTest(t *testing.T, store *memStore) *Workspace {
	t.Helper()
	ws, err := Open(context.Background(), store, WithLogger(zaptest.NewLogger(t)), WithUndoLimit(10))
	require.NoError(t, err)
	return ws
}

func TestWorkspace_ExecuteSaveUndo(t *testing.T) {
	store := &memStore{}
	ws := openTest(t, store)
	ctx := context.Background()

	require.NoError(t, ws.Save(ctx))
	assert.Zero(t, store.saves, "a clean workspace is not written")

	require.NoError(t, ws.Execute(commands.NewCreateFolder(ws.Editor(), domain.Address{0}, "Work")))
	assert.True(t, ws.Dirty())
	require.NoError(t, ws.Save(ctx))
	assert.Equal(t, 1, store.saves)
	assert.False(t, ws.Dirty())
	assert.False(t, ws.Stale(ctx), "our own save is not a foreign change")

	name, err := ws.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Create Folder", name)
	assert.Empty(t, ws.Document().Root().Children)
	assert.True(t, ws.Dirty())

	name, err = ws.Redo()
	require.NoError(t, err)
	assert.Equal(t, "Create Folder", name)
	assert.False(t, ws.Dirty(), "redo returns to the saved state")

	_, err = ws.Redo()
	assert.ErrorIs(t, err, application.ErrNothingToRedo)
}

func TestWorkspace_SetOpenIsSavedNotUndone(t *testing.T) {
	store := &memStore{}
	ws := openTest(t, store)
	ctx := context.Background()
	require.NoError(t, ws.Execute(commands.NewCreateFolder(ws.Editor(), domain.Address{0}, "Work")))
	require.NoError(t, ws.Save(ctx))
	require.True(t, ws.Document().Root().Children[0].Open, "new folders start open")

	require.NoError(t, ws.SetOpen(domain.Address{0}, true))
	assert.False(t, ws.Dirty(), "setting the current state is a no-op")

	require.NoError(t, ws.SetOpen(domain.Address{0}, false))
	assert.True(t, ws.Dirty())
	assert.Equal(t, 1, ws.History().Len())

	require.NoError(t, ws.Save(ctx))
	assert.False(t, ws.Dirty())
	assert.False(t, store.doc.Root().Children[0].Open)

	assert.Error(t, ws.SetOpen(domain.Address{3}, true))
}

func TestWorkspace_Reload(t *testing.T) {
	store := &memStore{}
	ws := openTest(t, store)
	ctx := context.Background()
	require.NoError(t, ws.Execute(commands.NewCreateBookmark(ws.Editor(), domain.Address{0}, "Go", "https://go.dev")))

	assert.False(t, ws.Stale(ctx))
	other := domain.NewDocument()
	other.Root().Children = []*domain.Node{domain.NewFolder("From elsewhere")}
	store.doc = other
	store.savedAt = time.Unix(100, 0)
	assert.True(t, ws.Stale(ctx))

	require.NoError(t, ws.Reload(ctx))
	assert.False(t, ws.Stale(ctx))
	assert.Equal(t, "From elsewhere", ws.Document().Root().Children[0].Title)
	assert.False(t, ws.History().CanUndo())
	assert.False(t, ws.Dirty())
}

func TestWorkspace_OpenFails(t *testing.T) {
	_, err := Open(context.Background(), &memStore{loadErr: errors.New("disk gone")})
	assert.ErrorContains(t, err, "disk gone")
}

func TestWorkspace_With(t *testing.T) {
	store := &memStore{}
	ws := openTest(t, store)

	err := ws.With(func(w *Workspace) error {
		return w.Execute(commands.NewCreateSeparator(w.Editor(), domain.Address{0}))
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Counts{Separators: 1}, ws.Document().Count())

	require.NoError(t, ws.Close())
	assert.True(t, store.closed)
}

func TestWorkspace_SetIcon(t *testing.T) {
	store := &memStore{}
	ws := openTest(t, store)
	ctx := context.Background()
	require.NoError(t, ws.Execute(commands.NewCreateBookmark(ws.Editor(), domain.Address{0}, "Go", "https://go.dev")))
	require.NoError(t, ws.Save(ctx))
	bm := ws.Document().Root().Children[0]

	require.NoError(t, ws.SetIcon(bm, "https://go.dev/favicon.ico"))
	assert.Equal(t, "https://go.dev/favicon.ico", bm.Icon)
	assert.Equal(t, 1, ws.History().Len(), "icons are not undoable")
	assert.True(t, ws.Dirty())

	require.NoError(t, ws.Save(ctx))
	assert.Equal(t, "https://go.dev/favicon.ico", store.doc.Root().Children[0].Icon)

	require.NoError(t, ws.SetIcon(bm, "https://go.dev/favicon.ico"))
	assert.False(t, ws.Dirty(), "an unchanged icon changes nothing")

	require.NoError(t, ws.SetIcon(domain.NewBookmark("gone", "https://x"), "icon"))
	assert.False(t, ws.Dirty(), "a detached node is ignored")

	require.NoError(t, ws.Execute(commands.NewCreateSeparator(ws.Editor(), domain.Address{1})))
	err := ws.SetIcon(ws.Document().Root().Children[1], "icon")
	assert.ErrorIs(t, err, domain.ErrStructuralViolation)
}

func TestWorkspace_SetIconKeepsRedo(t *testing.T) {
	ws := openTest(t, &memStore{})
	require.NoError(t, ws.Execute(commands.NewCreateBookmark(ws.Editor(), domain.Address{0}, "Go", "https://go.dev")))
	require.NoError(t, ws.Execute(commands.NewCreateBookmark(ws.Editor(), domain.Address{1}, "Rust", "https://rust-lang.org")))
	bm := ws.Document().Root().Children[0]

	_, err := ws.Undo()
	require.NoError(t, err)
	require.True(t, ws.History().CanRedo())

	// an icon arriving from a running refresh
	require.NoError(t, ws.SetIcon(bm, "https://go.dev/favicon.ico"))
	assert.True(t, ws.History().CanRedo())
	assert.Equal(t, 2, ws.History().Len())
	assert.Equal(t, "Create Bookmark", ws.History().UndoName())

	name, err := ws.Redo()
	require.NoError(t, err)
	assert.Equal(t, "Create Bookmark", name)
	assert.Len(t, ws.Document().Root().Children, 2)
	assert.Equal(t, "https://go.dev/favicon.ico", bm.Icon)
}

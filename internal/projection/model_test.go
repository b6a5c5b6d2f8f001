package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
)

// sampleDoc builds:
//
//	/0 Work
//	  /0/0 Jira
//	  /0/1 ---
//	  /0/2 Docs
//	    /0/2/0 Go
//	    /0/2/1 Rust
//	/1 News
//	/2 Empty
func sampleDoc() *domain.Document {
	docs := domain.NewFolder("Docs")
	docs.Children = []*domain.Node{
		domain.NewBookmark("Go", "https://go.dev"),
		domain.NewBookmark("Rust", "https://rust-lang.org"),
	}
	work := domain.NewFolder("Work")
	work.Open = true
	work.Children = []*domain.Node{
		domain.NewBookmark("Jira", "https://jira.example.com"),
		domain.NewSeparator(),
		docs,
	}
	doc := domain.NewDocument()
	doc.Root().Children = []*domain.Node{
		work,
		domain.NewBookmark("News", "https://news.example.com"),
		domain.NewFolder("Empty"),
	}
	return doc
}

func setup(t *testing.T, doc *domain.Document, opts ...Option) (*commands.Editor, *Model) {
	t.Helper()
	ed := commands.NewEditor(doc)
	m := New(ed, append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)...)
	ed.AddObserver(m)
	return ed, m
}

// checkMirrors asserts every loaded mirror matches its folder child for child
func checkMirrors(t *testing.T, m *Model) {
	t.Helper()
	var walk func(mi *mirror)
	walk = func(mi *mirror) {
		if !mi.loaded {
			return
		}
		require.Len(t, mi.children, len(mi.node.Children), "mirror of %q out of step", mi.node.Title)
		for i, c := range mi.children {
			require.Same(t, mi.node.Children[i], c.node)
			require.Same(t, mi, c.parent)
			walk(c)
		}
	}
	walk(m.root)
}

type fixedStatus map[*domain.Node]string

func (f fixedStatus) Status(n *domain.Node) string { return f[n] }

func TestModel_LoadsLazily(t *testing.T) {
	_, m := setup(t, sampleDoc())

	assert.False(t, m.root.loaded)
	assert.True(t, m.HasChildren(m.Root()))
	assert.False(t, m.root.loaded, "HasChildren does not load")

	assert.Equal(t, 3, m.RowCount(m.Root()))
	assert.True(t, m.root.loaded)

	work := m.Index(0, ColumnTitle, Index{})
	require.True(t, work.IsValid())
	assert.False(t, work.m.loaded)
	assert.Equal(t, 3, m.RowCount(work))
	assert.True(t, work.m.loaded)

	assert.False(t, m.Index(3, ColumnTitle, Index{}).IsValid())
	assert.False(t, m.Index(0, ColumnCount, Index{}).IsValid())
	assert.Zero(t, m.RowCount(m.Index(1, ColumnTitle, Index{})))
}

func TestModel_AddressRoundTrip(t *testing.T) {
	doc := sampleDoc()
	_, m := setup(t, doc)

	err := doc.Walk(func(a domain.Address, n *domain.Node) error {
		i := m.IndexFor(a)
		require.True(t, i.IsValid(), "index for %s", a)
		assert.Same(t, n, m.Node(i))
		assert.Equal(t, a, m.AddressOf(i))
		assert.Equal(t, a.Position(), i.Row())

		parent := m.Parent(i)
		assert.Equal(t, a.Parent(), m.AddressOf(parent))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RootAddress(), m.AddressOf(m.Root()))
	assert.False(t, m.IndexFor(domain.Address{0, 7}).IsValid())
	checkMirrors(t, m)
}

func TestModel_Data(t *testing.T) {
	doc := sampleDoc()
	news := doc.Root().Children[1]
	_, m := setup(t, doc, WithStatusSource(fixedStatus{news: "200 OK"}))
	news.Description = "daily"

	i := m.IndexFor(domain.Address{1})
	cell := func(c Column) string {
		return m.Data(m.Index(i.Row(), c, m.Parent(i)))
	}
	assert.Equal(t, "News", cell(ColumnTitle))
	assert.Equal(t, "https://news.example.com", cell(ColumnURL))
	assert.Equal(t, "daily", cell(ColumnDescription))
	assert.Equal(t, "200 OK", cell(ColumnStatus))

	sep := m.IndexFor(domain.Address{0, 1})
	assert.NotEmpty(t, m.Data(sep))
	assert.Empty(t, m.Data(Index{}))
}

func TestModel_Flatten(t *testing.T) {
	_, m := setup(t, sampleDoc())

	var got []string
	for _, r := range m.Flatten(nil) {
		got = append(got, r.Node.Title)
	}
	// Work is open, Docs and Empty are closed
	assert.Equal(t, []string{"Work", "Jira", "", "Docs", "News", "Empty"}, got)

	all := m.Flatten(func(*domain.Node) bool { return true })
	assert.Len(t, all, 8)
	assert.Equal(t, 2, all[4].Depth)
	assert.Equal(t, domain.Address{0, 2, 0}, m.AddressOf(all[4].Index))
}

func TestModel_BracketsMustPair(t *testing.T) {
	_, m := setup(t, sampleDoc())

	assert.Panics(t, func() { m.EndInsert() })
	assert.Panics(t, func() {
		m.BeginRemove(domain.RootAddress(), 0, 0)
		m.EndInsert()
	})

	_, m = setup(t, sampleDoc())
	m.BeginInsert(domain.RootAddress(), 0, 0)
	assert.Panics(t, func() { m.BeginInsert(domain.RootAddress(), 0, 0) })
	assert.Panics(t, func() { m.Reset() })
}

func TestModel_EventsAreBracketed(t *testing.T) {
	doc := sampleDoc()
	ed, m := setup(t, doc)

	var got []string
	unsubscribe := m.Subscribe(func(e Event) {
		got = append(got, e.Kind.String()+" "+e.Parent.String())
	})

	require.NoError(t, commands.NewCreateSeparator(ed, domain.Address{2, 0}).Execute())
	require.NoError(t, commands.NewMoveCommand(ed, domain.Address{1}, domain.Address{0}).Execute())
	require.NoError(t, commands.NewRenameCommand(ed, domain.Address{0}, "Headlines").Execute())
	ed.Replace(sampleDoc())

	assert.Equal(t, []string{
		"about-to-insert /2", "inserted /2",
		"about-to-move /", "moved /",
		"changed /0",
		"reset /",
	}, got)

	unsubscribe()
	require.NoError(t, commands.NewCreateSeparator(ed, domain.Address{0}).Execute())
	assert.Len(t, got, 6)
}

func TestModel_ResetFollowsReplacedDocument(t *testing.T) {
	ed, m := setup(t, sampleDoc())

	p := m.Persist(m.IndexFor(domain.Address{0, 0}))
	other := domain.NewDocument()
	other.Root().Children = []*domain.Node{domain.NewBookmark("Only", "https://only.example")}
	ed.Replace(other)

	_, ok := m.Lookup(p)
	assert.False(t, ok)
	assert.Equal(t, 1, m.RowCount(m.Root()))
	assert.Equal(t, "Only", m.Data(m.Index(0, ColumnTitle, Index{})))
}

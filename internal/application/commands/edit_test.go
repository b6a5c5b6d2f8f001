package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
)

func TestEditCommand_ReversesEveryPatch(t *testing.T) {
	doc := sampleDoc()
	before := cloneDoc(doc)
	ed, rec := newTestEditor(t, doc)

	cmd := NewEditCommand(ed, domain.Address{0, 0},
		Patch{Attr: AttrTitle, Value: "Tickets"},
		Patch{Attr: AttrURL, Value: "https://tickets.example.com"},
		Patch{Attr: AttrMeta, Key: domain.MetaToolbar, Unset: true},
		Patch{Attr: AttrMeta, Key: domain.MetaVisited, Value: "2024-01-01"},
		Patch{Attr: AttrTitle, Value: "Tickets 2"},
	)
	require.NoError(t, cmd.Execute())

	n := doc.Root().Children[0].Children[0]
	assert.Equal(t, "Tickets 2", n.Title)
	assert.Equal(t, "https://tickets.example.com", n.URL)
	assert.Equal(t, map[string]string{domain.MetaVisited: "2024-01-01"}, n.Meta)
	assert.Equal(t, []string{"changed /0/0"}, rec.events)

	require.NoError(t, cmd.Unexecute())
	assert.True(t, before.Root().Equal(doc.Root()))
	assert.Equal(t, "yes", n.MetaValue(domain.MetaToolbar))
	_, had := n.Meta[domain.MetaVisited]
	assert.False(t, had)
}

func TestEditCommand_RejectsBookmarkFieldsOnOtherKinds(t *testing.T) {
	doc := sampleDoc()
	before := cloneDoc(doc)
	ed, _ := newTestEditor(t, doc)

	for _, at := range []domain.Address{{0}, {0, 1}} {
		err := NewEditCommand(ed, at,
			Patch{Attr: AttrTitle, Value: "fine"},
			Patch{Attr: AttrURL, Value: "https://nope.example"},
		).Execute()
		assert.ErrorIs(t, err, domain.ErrStructuralViolation)
	}
	assert.True(t, before.Root().Equal(doc.Root()), "a rejected batch changes nothing")
}

func TestParseAttr(t *testing.T) {
	tests := []struct {
		in   string
		attr Attr
		key  string
		ok   bool
	}{
		{in: "title", attr: AttrTitle, ok: true},
		{in: "desc", attr: AttrDescription, ok: true},
		{in: "url", attr: AttrURL, ok: true},
		{in: "icon", attr: AttrIcon, ok: true},
		{in: "meta:visited", attr: AttrMeta, key: "visited", ok: true},
		{in: "meta:", ok: false},
		{in: "colour", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			attr, key, ok := ParseAttr(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.attr, attr)
				assert.Equal(t, tt.key, key)
			}
		})
	}
}

func TestNodeEditCommand(t *testing.T) {
	doc := sampleDoc()
	ed, _ := newTestEditor(t, doc)

	rename := NewRenameCommand(ed, domain.Address{2}, "Later")
	assert.Equal(t, "Rename", rename.Name())
	require.NoError(t, rename.Execute())
	assert.Equal(t, "Later", doc.Root().Children[2].Title)
	require.NoError(t, rename.Unexecute())
	assert.Equal(t, "Empty", doc.Root().Children[2].Title)

	desc := NewNodeEditCommand(ed, domain.Address{1}, AttrDescription, "daily")
	require.NoError(t, desc.Execute())
	assert.Equal(t, "daily", doc.Root().Children[1].Description)
	require.NoError(t, desc.Unexecute())
	assert.Empty(t, doc.Root().Children[1].Description)

	err := NewNodeEditCommand(ed, domain.Address{1}, AttrURL, "x").Execute()
	assert.Error(t, err)
	assert.Equal(t, "https://news.example.com", doc.Root().Children[1].URL)
}

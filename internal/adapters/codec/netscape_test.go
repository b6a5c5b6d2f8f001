package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
)

const firefoxExport = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<!-- This is an automatically generated file. -->
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks Menu</H1>

<DL><p>
    <DT><H3 ADD_DATE="1600000000" PERSONAL_TOOLBAR_FOLDER="true">Bookmarks Toolbar</H3>
    <DD>Add bookmarks here
    <DL><p>
        <DT><A HREF="https://go.dev/" ADD_DATE="1600000001" LAST_MODIFIED="1600000002" ICON="data:image/png;base64,AAAA">The Go &amp; Programming Language</A>
        <DD>Official site
        <DT><H3>Nested</H3>
        <DL><p>
        </DL><p>
    </DL><p>
    <HR>
    <DT><A HREF="https://example.com/">Example</A>
</DL>
`

func TestNetscapeUnmarshal_FirefoxExport(t *testing.T) {
	doc, err := Netscape{}.Unmarshal([]byte(firefoxExport))
	require.NoError(t, err)

	root := doc.Root()
	require.Len(t, root.Children, 3)

	toolbar := root.Children[0]
	assert.Equal(t, domain.KindFolder, toolbar.Kind)
	assert.Equal(t, "Bookmarks Toolbar", toolbar.Title)
	assert.Equal(t, "Add bookmarks here", toolbar.Description)
	require.Len(t, toolbar.Children, 2)

	gobm := toolbar.Children[0]
	assert.Equal(t, "The Go & Programming Language", gobm.Title)
	assert.Equal(t, "https://go.dev/", gobm.URL)
	assert.Equal(t, "Official site", gobm.Description)
	assert.Equal(t, "data:image/png;base64,AAAA", gobm.Icon)
	assert.Equal(t, "1600000001", gobm.MetaValue("add_date"))
	assert.Equal(t, "1600000002", gobm.MetaValue(domain.MetaLastModified))

	nested := toolbar.Children[1]
	assert.Equal(t, "Nested", nested.Title)
	assert.Empty(t, nested.Children)

	assert.Equal(t, domain.KindSeparator, root.Children[1].Kind)
	assert.Equal(t, "Example", root.Children[2].Title)
}

func TestNetscape_RoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := Netscape{}.Marshal(doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE NETSCAPE-Bookmark-file-1>"))
	assert.Contains(t, string(data), `HREF="https://jira.example.com/?a=1&amp;b=2"`)

	got, err := Netscape{}.Unmarshal(data)
	require.NoError(t, err)

	// open state is not part of the format
	want := doc.Root().Clone()
	want.Children[0].Open = false
	got.Root().Open = true
	assert.True(t, want.Equal(got.Root()), "round trip changed the tree:\n%s", data)
}

func TestNetscapeUnmarshal_NoList(t *testing.T) {
	_, err := Netscape{}.Unmarshal([]byte("<html><body>hello</body></html>"))
	assert.Error(t, err)
}

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

func sampleDoc() *domain.Document {
	doc := domain.NewDocument()
	jira := domain.NewBookmark("Jira & Co", "https://jira.example.com/?a=1&b=2")
	jira.Description = "tickets"
	jira.Icon = "data:image/png;base64,AAAA"
	jira.SetMeta(domain.MetaLastModified, "1700000000")
	docs := domain.NewFolder("Docs")
	docs.Children = []*domain.Node{domain.NewBookmark("Go", "https://go.dev")}
	work := domain.NewFolder("Work")
	work.Open = true
	work.Children = []*domain.Node{jira, domain.NewSeparator(), docs, domain.NewFolder("Empty")}
	doc.Root().Children = []*domain.Node{work, domain.NewBookmark("News", "https://news.example.com")}
	return doc
}

func TestNativeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		codec ports.Codec
	}{
		{"json indented", JSON{Indent: true}},
		{"json compact", JSON{}},
		{"yaml", YAML{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleDoc()
			data, err := tt.codec.Marshal(doc)
			require.NoError(t, err)

			got, err := tt.codec.Unmarshal(data)
			require.NoError(t, err)
			assert.True(t, doc.Root().Equal(got.Root()), "round trip changed the tree:\n%s", data)
		})
	}
}

func TestNativeUnmarshal_Errors(t *testing.T) {
	tests := []struct {
		name      string
		codec     ports.Codec
		input     string
		violation bool
	}{
		{"malformed json", JSON{}, `{"root":`, false},
		{"unknown kind", JSON{}, `{"version":1,"root":{"kind":"folder","children":[{"kind":"widget"}]}}`, false},
		{"children under bookmark", JSON{}, `{"version":1,"root":{"kind":"folder","children":[{"kind":"bookmark","children":[{"kind":"separator"}]}]}}`, true},
		{"bookmark root", YAML{}, "version: 1\nroot:\n  kind: bookmark\n", true},
		{"future version", YAML{}, "version: 99\nroot:\n  kind: folder\n", false},
		{"malformed yaml", YAML{}, "root: [", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.codec.Unmarshal([]byte(tt.input))
			require.Error(t, err)
			if tt.violation {
				assert.ErrorIs(t, err, domain.ErrStructuralViolation)
			}
		})
	}
}

func TestNativeUnmarshal_EmptyRoot(t *testing.T) {
	doc, err := JSON{}.Unmarshal([]byte(`{"version":1}`))
	require.NoError(t, err)
	assert.Empty(t, doc.Root().Children)
	assert.True(t, doc.Root().IsFolder())
}

func TestYAML_HandWritten(t *testing.T) {
	input := `
version: 1
root:
  kind: folder
  children:
    - kind: bookmark
      title: Go
      url: https://go.dev
      meta:
        toolbar: "yes"
    - kind: separator
    - kind: Folder
      title: Later
`
	doc, err := YAML{}.Unmarshal([]byte(input))
	require.NoError(t, err)

	root := doc.Root()
	require.Len(t, root.Children, 3)
	assert.Equal(t, "https://go.dev", root.Children[0].URL)
	assert.Equal(t, "yes", root.Children[0].MetaValue(domain.MetaToolbar))
	assert.Equal(t, domain.KindSeparator, root.Children[1].Kind)
	assert.Equal(t, domain.KindFolder, root.Children[2].Kind)
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    ports.Codec
		wantErr bool
	}{
		{"out.json", JSON{Indent: true}, false},
		{"out.yaml", YAML{}, false},
		{"out.YML", YAML{}, false},
		{"bookmarks.html", Netscape{}, false},
		{"bookmarks.htm", Netscape{}, false},
		{"notes.txt", nil, true},
		{"noext", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ForPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package commands

import (
	"fmt"
	"testing"

	"go.uber.org/zap/zaptest"

	"bookmarked/internal/domain"
)

// sampleDoc builds:
//
//	/0 Work (folder)
//	  /0/0 Jira
//	  /0/1 --- separator
//	  /0/2 Docs (folder)
//	    /0/2/0 Go
//	    /0/2/1 Rust
//	/1 News
//	/2 Empty (folder)
func sampleDoc() *domain.Document {
	doc := domain.NewDocument()
	docs := domain.NewFolder("Docs")
	docs.Children = []*domain.Node{
		domain.NewBookmark("Go", "https://go.dev"),
		domain.NewBookmark("Rust", "https://rust-lang.org"),
	}
	jira := domain.NewBookmark("Jira", "https://jira.example.com")
	jira.SetMeta(domain.MetaToolbar, "yes")
	work := domain.NewFolder("Work")
	work.Open = true
	work.Children = []*domain.Node{jira, domain.NewSeparator(), docs}
	doc.Root().Children = []*domain.Node{
		work,
		domain.NewBookmark("News", "https://news.example.com"),
		domain.NewFolder("Empty"),
	}
	return doc
}

func cloneDoc(doc *domain.Document) *domain.Document {
	return domain.NewDocumentFromRoot(doc.Root().Clone())
}

func newTestEditor(t *testing.T, doc *domain.Document) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{t: t}
	ed := NewEditor(doc, WithObserver(rec), WithEditorLogger(zaptest.NewLogger(t)))
	return ed, rec
}

func titles(n *domain.Node) []string {
	out := make([]string, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Title
	}
	return out
}

// recorder checks that observer brackets are strictly paired
type recorder struct {
	t      *testing.T
	open   string
	events []string
}

func (r *recorder) begin(kind string, format string, args ...any) {
	r.t.Helper()
	if r.open != "" {
		r.t.Fatalf("%s began while %s bracket is open", kind, r.open)
	}
	r.open = kind
	r.events = append(r.events, kind+" "+fmt.Sprintf(format, args...))
}

func (r *recorder) end(kind string) {
	r.t.Helper()
	if r.open != kind {
		r.t.Fatalf("end %s without matching begin (open: %q)", kind, r.open)
	}
	r.open = ""
}

func (r *recorder) BeginInsert(parent domain.Address, first, last int) {
	r.begin("insert", "%s %d-%d", parent, first, last)
}
func (r *recorder) EndInsert() { r.end("insert") }
func (r *recorder) BeginRemove(parent domain.Address, first, last int) {
	r.begin("remove", "%s %d-%d", parent, first, last)
}
func (r *recorder) EndRemove() { r.end("remove") }
func (r *recorder) BeginMove(sp domain.Address, sr int, dp domain.Address, dr int) {
	r.begin("move", "%s:%d -> %s:%d", sp, sr, dp, dr)
}
func (r *recorder) EndMove()                 { r.end("move") }
func (r *recorder) Changed(a domain.Address) { r.events = append(r.events, "changed "+a.String()) }
func (r *recorder) Reset()                   { r.events = append(r.events, "reset") }

func (r *recorder) count(kind string) int {
	n := 0
	for _, e := range r.events {
		if len(e) >= len(kind) && e[:len(kind)] == kind {
			n++
		}
	}
	return n
}

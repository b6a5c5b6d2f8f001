package codec

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// Netscape reads and writes the NETSCAPE-Bookmark-file-1 format that every
// browser exports. Folder metadata and open state do not survive a round trip.
type Netscape struct{}

var _ ports.Codec = Netscape{}

const netscapeHeader = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
`

// attributes carried over into bookmark metadata, in output order
var netscapeMeta = []struct{ attr, key string }{
	{"add_date", "add_date"},
	{"last_modified", domain.MetaLastModified},
	{"last_visit", domain.MetaVisited},
}

func metaKey(attr string) (string, bool) {
	for _, m := range netscapeMeta {
		if m.attr == attr {
			return m.key, true
		}
	}
	return "", false
}

func (Netscape) Marshal(doc *domain.Document) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(netscapeHeader)
	writeNetscapeFolder(&b, doc.Root(), 0)
	return b.Bytes(), nil
}

func writeNetscapeFolder(b *bytes.Buffer, folder *domain.Node, depth int) {
	indent := strings.Repeat("    ", depth)
	fmt.Fprintf(b, "%s<DL><p>\n", indent)
	for _, n := range folder.Children {
		inner := indent + "    "
		switch n.Kind {
		case domain.KindFolder:
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", inner, html.EscapeString(n.Title))
			writeDescription(b, inner, n.Description)
			writeNetscapeFolder(b, n, depth+1)
		case domain.KindBookmark:
			fmt.Fprintf(b, "%s<DT><A HREF=\"%s\"", inner, html.EscapeString(n.URL))
			for _, m := range netscapeMeta {
				if v := n.MetaValue(m.key); v != "" {
					fmt.Fprintf(b, " %s=\"%s\"", strings.ToUpper(m.attr), html.EscapeString(v))
				}
			}
			if n.Icon != "" {
				fmt.Fprintf(b, " ICON=\"%s\"", html.EscapeString(n.Icon))
			}
			fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(n.Title))
			writeDescription(b, inner, n.Description)
		case domain.KindSeparator:
			fmt.Fprintf(b, "%s<HR>\n", inner)
		}
	}
	fmt.Fprintf(b, "%s</DL><p>\n", indent)
}

func writeDescription(b *bytes.Buffer, indent, desc string) {
	if desc != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", indent, html.EscapeString(desc))
	}
}

// netscapeParser walks the token stream keeping a stack of open folders.
// The first <DL> is the root; every later <DL> opens the folder named by the
// <H3> just before it.
type netscapeParser struct {
	stack    []*domain.Node
	seenRoot bool
	pending  *domain.Node // folder named by the last <H3>, waiting for its <DL>
	title    *domain.Node // node whose title text is being read
	titleTag string
	desc     *domain.Node // node whose <DD> text is being read
	last     *domain.Node // last node added, target of a following <DD>
}

func (Netscape) Unmarshal(data []byte) (*domain.Document, error) {
	root := &domain.Node{Kind: domain.KindFolder, Open: true}
	p := &netscapeParser{stack: []*domain.Node{root}}

	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, fmt.Errorf("failed to parse bookmark file: %w", err)
			}
			if !p.seenRoot {
				return nil, fmt.Errorf("failed to parse bookmark file: no <DL> list found")
			}
			return domain.NewDocumentFromRoot(root), nil
		case html.TextToken:
			p.text(string(z.Text()))
		case html.StartTagToken, html.SelfClosingTagToken:
			p.desc = nil
			p.start(z.Token())
		case html.EndTagToken:
			p.desc = nil
			name, _ := z.TagName()
			p.end(string(name))
		}
	}
}

func (p *netscapeParser) top() *domain.Node {
	return p.stack[len(p.stack)-1]
}

func (p *netscapeParser) add(n *domain.Node) {
	top := p.top()
	top.Children = append(top.Children, n)
	p.last = n
}

func (p *netscapeParser) text(s string) {
	switch {
	case p.title != nil:
		p.title.Title += s
	case p.desc != nil:
		p.desc.Description += strings.TrimSpace(s)
	}
}

func (p *netscapeParser) start(t html.Token) {
	switch t.Data {
	case "dl":
		if !p.seenRoot {
			p.seenRoot = true
			return
		}
		if p.pending != nil {
			p.stack = append(p.stack, p.pending)
			p.pending = nil
		}
	case "h3":
		f := domain.NewFolder("")
		p.add(f)
		p.pending = f
		p.title, p.titleTag = f, "h3"
	case "a":
		bm := domain.NewBookmark("", "")
		for _, a := range t.Attr {
			switch a.Key {
			case "href":
				bm.URL = a.Val
			case "icon":
				bm.Icon = a.Val
			default:
				if key, ok := metaKey(a.Key); ok && a.Val != "" {
					bm.SetMeta(key, a.Val)
				}
			}
		}
		p.add(bm)
		p.title, p.titleTag = bm, "a"
	case "hr":
		p.add(domain.NewSeparator())
	case "dd":
		p.desc = p.last
	}
}

func (p *netscapeParser) end(name string) {
	switch name {
	case p.titleTag:
		if p.title != nil {
			p.title.Title = strings.TrimSpace(p.title.Title)
		}
		p.title, p.titleTag = nil, ""
	case "dl":
		if len(p.stack) > 1 {
			p.stack = p.stack[:len(p.stack)-1]
		}
		p.pending = nil
	}
}

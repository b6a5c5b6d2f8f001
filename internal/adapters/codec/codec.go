// Package codec converts documents to and from their serialized forms: the
// native JSON and YAML trees, and the Netscape bookmark file exported by
// browsers.
package codec

import (
	"fmt"
	"maps"
	"path/filepath"
	"strings"

	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

// FormatVersion is written into native documents
const FormatVersion = 1

// file is the native serialized form shared by the JSON and YAML codecs
type file struct {
	Version int   `json:"version" yaml:"version"`
	Root    *wire `json:"root" yaml:"root"`
}

type wire struct {
	Kind        string            `json:"kind" yaml:"kind"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	URL         string            `json:"url,omitempty" yaml:"url,omitempty"`
	Icon        string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Meta        map[string]string `json:"meta,omitempty" yaml:"meta,omitempty"`
	Open        bool              `json:"open,omitempty" yaml:"open,omitempty"`
	Children    []*wire           `json:"children,omitempty" yaml:"children,omitempty"`
}

func toWire(n *domain.Node) *wire {
	w := &wire{
		Kind:        strings.ToLower(n.Kind.String()),
		Title:       n.Title,
		Description: n.Description,
		URL:         n.URL,
		Icon:        n.Icon,
		Meta:        maps.Clone(n.Meta),
		Open:        n.Open,
	}
	for _, c := range n.Children {
		w.Children = append(w.Children, toWire(c))
	}
	return w
}

func fromWire(w *wire, path domain.Address) (*domain.Node, error) {
	kind, ok := parseKind(w.Kind)
	if !ok {
		return nil, fmt.Errorf("node %s: unknown kind %q", path, w.Kind)
	}
	if kind != domain.KindFolder && len(w.Children) > 0 {
		return nil, &domain.AddressError{Op: "decode", Address: path, Err: domain.ErrStructuralViolation}
	}
	n := &domain.Node{
		Kind:        kind,
		Title:       w.Title,
		Description: w.Description,
		URL:         w.URL,
		Icon:        w.Icon,
		Meta:        maps.Clone(w.Meta),
		Open:        w.Open,
	}
	for i, cw := range w.Children {
		if cw == nil {
			return nil, fmt.Errorf("node %s: empty child", path.Child(i))
		}
		c, err := fromWire(cw, path.Child(i))
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func parseKind(s string) (domain.Kind, bool) {
	switch strings.ToLower(s) {
	case "folder":
		return domain.KindFolder, true
	case "bookmark":
		return domain.KindBookmark, true
	case "separator":
		return domain.KindSeparator, true
	default:
		return 0, false
	}
}

func toFile(doc *domain.Document) file {
	return file{Version: FormatVersion, Root: toWire(doc.Root())}
}

func fromFile(f file) (*domain.Document, error) {
	if f.Version > FormatVersion {
		return nil, fmt.Errorf("unsupported format version %d", f.Version)
	}
	if f.Root == nil {
		return domain.NewDocument(), nil
	}
	root, err := fromWire(f.Root, domain.RootAddress())
	if err != nil {
		return nil, err
	}
	if !root.IsFolder() {
		return nil, &domain.AddressError{Op: "decode", Address: domain.RootAddress(), Err: domain.ErrStructuralViolation}
	}
	return domain.NewDocumentFromRoot(root), nil
}

// ForFormat returns the codec for a format name: json, yaml or html
func ForFormat(format string) (ports.Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return JSON{Indent: true}, nil
	case "yaml", "yml":
		return YAML{}, nil
	case "html", "netscape":
		return Netscape{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want json, yaml or html)", format)
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (ports.Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "htm" {
		ext = "html"
	}
	return ForFormat(ext)
}

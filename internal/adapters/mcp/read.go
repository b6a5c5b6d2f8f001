package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bookmarked/internal/adapters/codec"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/domain"
)

// RegisterReadTools adds all read-only bookmark tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, t *Tools) {
	s.AddTool(treeTool(), t.tree)
	s.AddTool(findTool(), t.find)
	s.AddTool(showTool(), t.show)
	s.AddTool(exportTool(), t.export)
}

// --- tree ---

type treeArgs struct {
	Address string `json:"address"`
	Depth   int    `json:"depth" validate:"gte=0"`
}

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display bookmarks as a tree. Each line starts with the node's address, e.g. /0/2, which other tools accept."),
		mcp.WithString("address",
			mcp.Description("Folder to start from (e.g. /0/2). Omit for the whole document."),
		),
		mcp.WithNumber("depth",
			mcp.Description("Maximum folder depth to show below the start folder. 0 shows everything."),
		),
	)
}

func (t *Tools) tree(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args treeArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	at, err := parseAddress("address", args.Address)
	if err != nil {
		return toolError(err)
	}

	return t.read(ctx, func(w *workspace.Workspace) (string, error) {
		doc := w.Document()
		if _, err := doc.ResolveFolder(at); err != nil {
			return "", err
		}
		var sb strings.Builder
		err := doc.WalkFrom(at, func(a domain.Address, n *domain.Node) error {
			depth := len(a) - len(at)
			sb.WriteString(strings.Repeat("  ", depth-1))
			sb.WriteString(formatLine(a, n))
			sb.WriteByte('\n')
			if n.IsFolder() && args.Depth > 0 && depth >= args.Depth {
				return domain.ErrSkipSubtree
			}
			return nil
		})
		if err != nil {
			return "", err
		}
		if sb.Len() == 0 {
			return "Empty folder.", nil
		}
		return sb.String(), nil
	})
}

// formatLine renders one node as "address  title  url"
func formatLine(a domain.Address, n *domain.Node) string {
	switch n.Kind {
	case domain.KindFolder:
		return fmt.Sprintf("%s  %s/", a, n.Title)
	case domain.KindSeparator:
		return fmt.Sprintf("%s  ----", a)
	default:
		return fmt.Sprintf("%s  %s  %s", a, n.Title, n.URL)
	}
}

// --- find ---

type findArgs struct {
	Query string `json:"query" validate:"required"`
}

func findTool() mcp.Tool {
	return mcp.NewTool("find",
		mcp.WithDescription("Find bookmarks and folders whose title, URL or description contains the query, ignoring case."),
		mcp.WithString("query",
			mcp.Description("Text to search for"),
			mcp.Required(),
		),
	)
}

func (t *Tools) find(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args findArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}

	return t.read(ctx, func(w *workspace.Workspace) (string, error) {
		doc := w.Document()
		matches := doc.FindAll(args.Query)
		if len(matches) == 0 {
			return "No results found.", nil
		}
		var sb strings.Builder
		for _, a := range matches {
			n, err := doc.Resolve(a)
			if err != nil {
				return "", err
			}
			sb.WriteString(formatLine(a, n))
			sb.WriteByte('\n')
		}
		return sb.String(), nil
	})
}

// --- show ---

type showArgs struct {
	Address string `json:"address" validate:"required"`
}

func showTool() mcp.Tool {
	return mcp.NewTool("show",
		mcp.WithDescription("Show every attribute of one node, including metadata such as visit and modification dates."),
		mcp.WithString("address",
			mcp.Description("Address of the node (e.g. /0/2)"),
			mcp.Required(),
		),
	)
}

func (t *Tools) show(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args showArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	at, err := parseAddress("address", args.Address)
	if err != nil {
		return toolError(err)
	}

	return t.read(ctx, func(w *workspace.Workspace) (string, error) {
		n, err := w.Document().Resolve(at)
		if err != nil {
			return "", err
		}
		return formatNode(at, n), nil
	})
}

func formatNode(a domain.Address, n *domain.Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Address: %s\n", a)
	fmt.Fprintf(&sb, "Kind: %s\n", n.Kind)
	if n.Kind == domain.KindSeparator {
		return sb.String()
	}
	fmt.Fprintf(&sb, "Title: %s\n", n.Title)
	if n.Description != "" {
		fmt.Fprintf(&sb, "Description: %s\n", n.Description)
	}
	switch n.Kind {
	case domain.KindFolder:
		fmt.Fprintf(&sb, "Children: %d\n", len(n.Children))
	case domain.KindBookmark:
		fmt.Fprintf(&sb, "URL: %s\n", n.URL)
		if n.Icon != "" {
			fmt.Fprintf(&sb, "Icon: %s\n", n.Icon)
		}
		keys := make([]string, 0, len(n.Meta))
		for k := range n.Meta {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", k, n.Meta[k])
		}
	}
	return sb.String()
}

// --- export ---

type exportArgs struct {
	Format string `json:"format" validate:"omitempty,oneof=json yaml yml html netscape"`
}

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Serialize the whole document. json and yaml keep every attribute; html is the Netscape bookmark file browsers import."),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum("json", "yaml", "html"),
		),
	)
}

func (t *Tools) export(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args exportArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	if args.Format == "" {
		args.Format = "json"
	}
	c, err := codec.ForFormat(args.Format)
	if err != nil {
		return toolError(err)
	}

	return t.read(ctx, func(w *workspace.Workspace) (string, error) {
		data, err := c.Marshal(w.Document())
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
}

// Package mcp exposes the bookmark document as MCP tools. Every call runs under
// the workspace lock, mutations go through the undo history, and the document
// is saved after each one so other programs see it at once.
package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"bookmarked/internal/application"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/domain"
)

// Tools serves one workspace to MCP clients
type Tools struct {
	ws     *workspace.Workspace
	logger *zap.Logger
}

// NewTools creates the tool set. A nil logger discards output.
func NewTools(ws *workspace.Workspace, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tools{ws: ws, logger: logger}
}

// Register adds every read and write tool to s
func (t *Tools) Register(s *server.MCPServer) {
	RegisterReadTools(s, t)
	RegisterWriteTools(s, t)
}

// sync reloads the document when another program saved it and nothing here
// is unsaved
func (t *Tools) sync(ctx context.Context, w *workspace.Workspace) {
	if !w.Stale(ctx) {
		return
	}
	if w.Dirty() {
		t.logger.Warn("store changed on disk while edits are unsaved")
		return
	}
	if err := w.Reload(ctx); err != nil {
		t.logger.Error("reload failed", zap.Error(err))
		return
	}
	t.logger.Info("reloaded bookmarks changed by another program")
}

// read runs fn under the workspace lock and returns its text
func (t *Tools) read(ctx context.Context, fn func(w *workspace.Workspace) (string, error)) (*mcp.CallToolResult, error) {
	var out string
	err := t.ws.With(func(w *workspace.Workspace) error {
		t.sync(ctx, w)
		var err error
		out, err = fn(w)
		return err
	})
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(out), nil
}

// write runs fn under the workspace lock and saves the document when fn
// succeeds
func (t *Tools) write(ctx context.Context, fn func(w *workspace.Workspace) (string, error)) (*mcp.CallToolResult, error) {
	var out string
	err := t.ws.With(func(w *workspace.Workspace) error {
		t.sync(ctx, w)
		var err error
		if out, err = fn(w); err != nil {
			return err
		}
		if err := w.Save(ctx); err != nil {
			return fmt.Errorf("saving bookmarks: %w", err)
		}
		return nil
	})
	if err != nil {
		t.logger.Debug("tool failed", zap.Error(err))
		return toolError(err)
	}
	return mcp.NewToolResultText(out), nil
}

// bind decodes the call arguments into args and checks its validate tags
func bind(req mcp.CallToolRequest, args any) error {
	if err := req.BindArguments(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return application.ValidateStruct(args)
}

// parseAddress parses an optional address argument; empty means the root
func parseAddress(field, value string) (domain.Address, error) {
	if value == "" {
		return domain.RootAddress(), nil
	}
	return application.ValidateAddress(field, value)
}

// slot returns the child address pos of the folder at parent, or the slot
// after its last child when pos is nil
func slot(doc *domain.Document, parent domain.Address, pos *int) (domain.Address, error) {
	folder, err := doc.ResolveFolder(parent)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return parent.Child(len(folder.Children)), nil
	}
	return parent.Child(*pos), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func describe(n *domain.Node) string {
	switch n.Kind {
	case domain.KindSeparator:
		return "separator"
	case domain.KindFolder:
		return fmt.Sprintf("folder %q", n.Title)
	default:
		return fmt.Sprintf("bookmark %q", n.Title)
	}
}

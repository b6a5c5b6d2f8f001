package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"bookmarked/internal/adapters/codec"
	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/domain"
)

// RegisterWriteTools adds all tools that change the document to the MCP server.
func RegisterWriteTools(s *server.MCPServer, t *Tools) {
	s.AddTool(createFolderTool(), t.createFolder)
	s.AddTool(createBookmarkTool(), t.createBookmark)
	s.AddTool(createSeparatorTool(), t.createSeparator)
	s.AddTool(deleteTool(), t.delete)
	s.AddTool(moveTool(), t.move)
	s.AddTool(sortTool(), t.sort)
	s.AddTool(editTool(), t.edit)
	s.AddTool(importTool(), t.importDoc)
	s.AddTool(undoTool(), t.undo)
	s.AddTool(redoTool(), t.redo)
}

func parentOption() mcp.ToolOption {
	return mcp.WithString("parent",
		mcp.Description("Address of the destination folder (e.g. /0). Omit for the top level."),
	)
}

func positionOption() mcp.ToolOption {
	return mcp.WithNumber("position",
		mcp.Description("Index among the folder's children, counted before the change. Omit to append."),
	)
}

// --- create ---

type createArgs struct {
	Parent      string `json:"parent"`
	Position    *int   `json:"position" validate:"omitempty,gte=0"`
	Description string `json:"description"`
}

type createFolderArgs struct {
	createArgs
	Title string `json:"title" validate:"required"`
}

type createBookmarkArgs struct {
	createArgs
	Title string `json:"title"`
	URL   string `json:"url" validate:"required,url"`
}

func createFolderTool() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create an empty folder."),
		parentOption(),
		positionOption(),
		mcp.WithString("title",
			mcp.Description("Folder name"),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Optional description"),
		),
	)
}

func createBookmarkTool() mcp.Tool {
	return mcp.NewTool("create_bookmark",
		mcp.WithDescription("Create a bookmark."),
		parentOption(),
		positionOption(),
		mcp.WithString("url",
			mcp.Description("Absolute URL, e.g. https://go.dev"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("Bookmark title"),
		),
		mcp.WithString("description",
			mcp.Description("Optional description"),
		),
	)
}

func createSeparatorTool() mcp.Tool {
	return mcp.NewTool("create_separator",
		mcp.WithDescription("Insert a separator line."),
		parentOption(),
		positionOption(),
	)
}

func (t *Tools) createFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createFolderArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	n := domain.NewFolder(args.Title)
	n.Description = args.Description
	return t.create(ctx, args.createArgs, n)
}

func (t *Tools) createBookmark(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createBookmarkArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	n := domain.NewBookmark(args.Title, args.URL)
	n.Description = args.Description
	return t.create(ctx, args.createArgs, n)
}

func (t *Tools) createSeparator(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args createArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	return t.create(ctx, args, domain.NewSeparator())
}

func (t *Tools) create(ctx context.Context, args createArgs, n *domain.Node) (*mcp.CallToolResult, error) {
	parent, err := parseAddress("parentAddress", args.Parent)
	if err != nil {
		return toolError(err)
	}

	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		at, err := slot(w.Document(), parent, args.Position)
		if err != nil {
			return "", err
		}
		cmd := commands.NewCreateNode(w.Editor(), at, n, "")
		if err := w.Execute(cmd); err != nil {
			return "", err
		}
		return fmt.Sprintf("Created %s at %s", describe(n), cmd.Address()), nil
	})
}

// --- delete ---

type deleteArgs struct {
	Addresses []string `json:"addresses" validate:"required,min=1,dive,required"`
}

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete nodes with everything inside them. Addresses are all taken before anything is removed. Undo restores them."),
		mcp.WithArray("addresses",
			mcp.Description("Addresses to delete (e.g. [\"/0/2\", \"/3\"])"),
			mcp.Required(),
			mcp.Items(map[string]any{"type": "string"}),
		),
	)
}

func (t *Tools) delete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args deleteArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	addrs := make([]domain.Address, 0, len(args.Addresses))
	for _, s := range args.Addresses {
		a, err := application.ValidateAddress("address", s)
		if err != nil {
			return toolError(err)
		}
		if err := application.ValidateNotRoot("address", a); err != nil {
			return toolError(err)
		}
		addrs = append(addrs, a)
	}

	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		cmd := commands.NewDeleteMany(w.Editor(), addrs)
		if err := w.Execute(cmd); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %d item(s)", cmd.Len()), nil
	})
}

// --- move ---

type moveArgs struct {
	From     string `json:"from" validate:"required"`
	Parent   string `json:"parent"`
	Position *int   `json:"position" validate:"omitempty,gte=0"`
}

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a node, with everything inside it, into a folder."),
		mcp.WithString("from",
			mcp.Description("Address of the node to move"),
			mcp.Required(),
		),
		parentOption(),
		positionOption(),
	)
}

func (t *Tools) move(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args moveArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	from, err := application.ValidateAddress("from", args.From)
	if err != nil {
		return toolError(err)
	}
	if err := application.ValidateNotRoot("from", from); err != nil {
		return toolError(err)
	}
	parent, err := parseAddress("to", args.Parent)
	if err != nil {
		return toolError(err)
	}

	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		to, err := slot(w.Document(), parent, args.Position)
		if err != nil {
			return "", err
		}
		if to.Equal(from) || to.Equal(from.NextSibling()) {
			return fmt.Sprintf("%s is already there", from), nil
		}
		cmd := commands.NewMoveCommand(w.Editor(), from, to)
		if err := w.Execute(cmd); err != nil {
			return "", err
		}
		return fmt.Sprintf("Moved %s to %s", from, cmd.To()), nil
	})
}

// --- sort ---

type sortArgs struct {
	Address   string `json:"address"`
	Recursive bool   `json:"recursive"`
}

func sortTool() mcp.Tool {
	return mcp.NewTool("sort",
		mcp.WithDescription("Sort a folder's children: folders first, then by title ignoring case."),
		mcp.WithString("address",
			mcp.Description("Folder to sort. Omit for the top level."),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Also sort every folder inside it"),
		),
	)
}

func (t *Tools) sort(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args sortArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	at, err := parseAddress("address", args.Address)
	if err != nil {
		return toolError(err)
	}

	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		if args.Recursive {
			cmd := commands.NewRecursiveSort(w.Editor(), at)
			if err := w.Execute(cmd); err != nil {
				return "", err
			}
			return fmt.Sprintf("Sorted %d folder(s)", cmd.Folders()), nil
		}
		cmd := commands.NewSortCommand(w.Editor(), at)
		if err := w.Execute(cmd); err != nil {
			return "", err
		}
		if cmd.Moves() == 0 {
			return "Already sorted", nil
		}
		return fmt.Sprintf("Sorted with %d move(s)", cmd.Moves()), nil
	})
}

// --- edit ---

type editArgs struct {
	Address     string            `json:"address" validate:"required"`
	Title       *string           `json:"title"`
	URL         *string           `json:"url" validate:"omitempty,url"`
	Description *string           `json:"description"`
	Icon        *string           `json:"icon"`
	Meta        map[string]string `json:"meta"`
}

func (a editArgs) patches() []commands.Patch {
	var out []commands.Patch
	for _, f := range []struct {
		attr  commands.Attr
		value *string
	}{
		{commands.AttrTitle, a.Title},
		{commands.AttrURL, a.URL},
		{commands.AttrDescription, a.Description},
		{commands.AttrIcon, a.Icon},
	} {
		if f.value != nil {
			out = append(out, commands.Patch{Attr: f.attr, Value: *f.value})
		}
	}
	for k, v := range a.Meta {
		out = append(out, commands.Patch{Attr: commands.AttrMeta, Key: k, Value: v, Unset: v == ""})
	}
	return out
}

func editTool() mcp.Tool {
	return mcp.NewTool("edit",
		mcp.WithDescription("Change attributes of a node. Only the given attributes change; the whole edit is undone as one step."),
		mcp.WithString("address",
			mcp.Description("Address of the node"),
			mcp.Required(),
		),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("url", mcp.Description("New URL (bookmarks only)")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("icon", mcp.Description("New icon URL (bookmarks only)")),
		mcp.WithObject("meta",
			mcp.Description("Metadata entries to set; an empty value removes the key (bookmarks only)"),
			mcp.AdditionalProperties(map[string]any{"type": "string"}),
		),
	)
}

func (t *Tools) edit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args editArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	at, err := application.ValidateAddress("address", args.Address)
	if err != nil {
		return toolError(err)
	}
	patches := args.patches()
	if len(patches) == 0 {
		return toolError(&application.ValidationError{Field: "address", Message: "nothing to change"})
	}

	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		if err := w.Execute(commands.NewEditCommand(w.Editor(), at, patches...)); err != nil {
			return "", err
		}
		n, err := w.Document().Resolve(at)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Updated %s at %s", describe(n), at), nil
	})
}

// --- import ---

type importArgs struct {
	Content string `json:"content" validate:"required"`
	Format  string `json:"format" validate:"omitempty,oneof=json yaml yml html netscape"`
	Replace bool   `json:"replace"`
	Folder  string `json:"folder"`
}

func importTool() mcp.Tool {
	return mcp.NewTool("import",
		mcp.WithDescription("Import bookmarks into a new top-level folder, or replace everything. Undo reverts the whole import."),
		mcp.WithString("content",
			mcp.Description("Serialized bookmarks"),
			mcp.Required(),
		),
		mcp.WithString("format",
			mcp.Description("Format of content"),
			mcp.Enum("html", "json", "yaml"),
		),
		mcp.WithBoolean("replace",
			mcp.Description("Replace every existing node instead of adding a folder"),
		),
		mcp.WithString("folder",
			mcp.Description("Title of the new folder (default \"Imported\")"),
		),
	)
}

func (t *Tools) importDoc(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args importArgs
	if err := bind(req, &args); err != nil {
		return toolError(err)
	}
	if args.Format == "" {
		args.Format = "html"
	}
	if args.Folder == "" {
		args.Folder = "Imported"
	}
	c, err := codec.ForFormat(args.Format)
	if err != nil {
		return toolError(err)
	}
	imported, err := c.Unmarshal([]byte(args.Content))
	if err != nil {
		return toolError(err)
	}
	nodes := imported.Root().Children

	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		mode := commands.ImportIntoFolder
		at := domain.Address{len(w.Document().Root().Children)}
		if args.Replace {
			mode = commands.ImportReplace
		}
		if err := w.Execute(commands.NewImportCommand(w.Editor(), mode, at, args.Folder, nodes)); err != nil {
			return "", err
		}
		counts := imported.Count()
		return fmt.Sprintf("Imported %d bookmark(s) in %d folder(s)", counts.Bookmarks, counts.Folders), nil
	})
}

// --- undo / redo ---

func undoTool() mcp.Tool {
	return mcp.NewTool("undo",
		mcp.WithDescription("Undo the last change made through these tools."),
	)
}

func redoTool() mcp.Tool {
	return mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone change."),
	)
}

func (t *Tools) undo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		name, err := w.Undo()
		if err != nil {
			return "", err
		}
		return "Undid " + name, nil
	})
}

func (t *Tools) redo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.write(ctx, func(w *workspace.Workspace) (string, error) {
		name, err := w.Redo()
		if err != nil {
			return "", err
		}
		return "Redid " + name, nil
	})
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
)

var (
	createParent string
	createPos    int
	createDesc   string
)

var addCmd = &cobra.Command{
	Use:   "add <url> [title]",
	Short: "Add a bookmark",
	Long: `Add a bookmark to a folder. Without --parent it goes to the top level,
and without --pos it is appended.

Examples:
  bookmarks-cli add https://go.dev "The Go Programming Language"
  bookmarks-cli add https://pkg.go.dev --parent /0 --pos 0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.ValidateURL("url", args[0]); err != nil {
			return err
		}
		title := ""
		if len(args) == 2 {
			title = args[1]
		}
		n := domain.NewBookmark(title, args[0])
		n.Description = createDesc
		return create(cmd, n)
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <title>",
	Short: "Create a folder",
	Long: `Create an empty folder.

Examples:
  bookmarks-cli mkdir "Reading list"
  bookmarks-cli mkdir Tools --parent /2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.ValidateRequired("title", args[0]); err != nil {
			return err
		}
		n := domain.NewFolder(args[0])
		n.Description = createDesc
		return create(cmd, n)
	},
}

var sepCmd = &cobra.Command{
	Use:   "sep",
	Short: "Insert a separator",
	Long: `Insert a separator line.

Example:
  bookmarks-cli sep --parent /0 --pos 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return create(cmd, domain.NewSeparator())
	},
}

func create(cmd *cobra.Command, n *domain.Node) error {
	ws := GetWorkspace()
	at, err := insertAt(ws.Document(), createParent, createPos)
	if err != nil {
		return err
	}
	c := commands.NewCreateNode(ws.Editor(), at, n, "")
	if err := ws.Execute(c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", formatNode(c.Address(), n))
	return nil
}

// insertAt returns the slot pos in the folder at parent; a negative pos is the
// slot after the last child
func insertAt(doc *domain.Document, parent string, pos int) (domain.Address, error) {
	at, err := application.ValidateAddress("parentAddress", parent)
	if err != nil {
		return nil, err
	}
	folder, err := doc.ResolveFolder(at)
	if err != nil {
		return nil, err
	}
	if pos < 0 {
		pos = len(folder.Children)
	}
	return at.Child(pos), nil
}

func addPlacementFlags(c *cobra.Command) {
	c.Flags().StringVarP(&createParent, "parent", "p", "/", "destination folder")
	c.Flags().IntVar(&createPos, "pos", -1, "position among the folder's children (default: append)")
}

func init() {
	for _, c := range []*cobra.Command{addCmd, mkdirCmd, sepCmd} {
		addPlacementFlags(c)
		rootCmd.AddCommand(c)
	}
	addCmd.Flags().StringVar(&createDesc, "desc", "", "description")
	mkdirCmd.Flags().StringVar(&createDesc, "desc", "", "description")
}

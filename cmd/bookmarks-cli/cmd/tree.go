package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bookmarked/internal/application"
	"bookmarked/internal/domain"
)

var treeDepth int

var treeCmd = &cobra.Command{
	Use:   "tree [folder]",
	Short: "Display the bookmark tree",
	Long: `Display the bookmark tree with each node's address.

Examples:
  bookmarks-cli tree
  bookmarks-cli tree /0 --depth 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := domain.RootAddress()
		if len(args) == 1 {
			var err error
			if at, err = application.ValidateAddress("address", args[0]); err != nil {
				return err
			}
		}
		return printTree(cmd.OutOrStdout(), GetWorkspace().Document(), at, treeDepth)
	},
}

func printTree(w io.Writer, doc *domain.Document, at domain.Address, maxDepth int) error {
	if _, err := doc.ResolveFolder(at); err != nil {
		return err
	}
	return doc.WalkFrom(at, func(a domain.Address, n *domain.Node) error {
		depth := len(a) - len(at)
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth-1), formatNode(a, n))
		if n.IsFolder() && maxDepth > 0 && depth >= maxDepth {
			return domain.ErrSkipSubtree
		}
		return nil
	})
}

func formatNode(a domain.Address, n *domain.Node) string {
	switch n.Kind {
	case domain.KindFolder:
		return fmt.Sprintf("%s %s/", a, n.Title)
	case domain.KindSeparator:
		return fmt.Sprintf("%s ────", a)
	default:
		return fmt.Sprintf("%s %s <%s>", a, n.Title, n.URL)
	}
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "maximum folder depth (0 shows everything)")
	rootCmd.AddCommand(treeCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:     "find <query>",
	Aliases: []string{"search"},
	Short:   "Search bookmarks",
	Long: `Find bookmarks and folders whose title, URL or description contains the
query, ignoring case. Results are listed in tree order.

Examples:
  bookmarks-cli find golang
  bookmarks-cli find github.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := GetWorkspace().Document()
		matches := doc.FindAll(args[0])
		out := cmd.OutOrStdout()
		if len(matches) == 0 {
			fmt.Fprintln(out, "No results found")
			return nil
		}

		for _, a := range matches {
			n, err := doc.Resolve(a)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, formatNode(a, n))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}

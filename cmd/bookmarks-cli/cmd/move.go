package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
)

var (
	movePos       int
	sortRecursive bool
)

var moveCmd = &cobra.Command{
	Use:   "mv <address> <folder>",
	Short: "Move a node into a folder",
	Long: `Move a node, with everything inside it, into a folder. --pos counts the
folder's children as they are before the move; without it the node is appended.

Examples:
  bookmarks-cli mv /3 /0           # append /3 to folder /0
  bookmarks-cli mv /0/4 /0 --pos 0 # move to the front of its folder`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := application.ValidateAddress("from", args[0])
		if err != nil {
			return err
		}
		if err := application.ValidateNotRoot("from", from); err != nil {
			return err
		}

		ws := GetWorkspace()
		to, err := insertAt(ws.Document(), args[1], movePos)
		if err != nil {
			return err
		}
		if to.Equal(from) || to.Equal(from.NextSibling()) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already there\n", from)
			return nil
		}

		c := commands.NewMoveCommand(ws.Editor(), from, to)
		if err := ws.Execute(c); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", from, c.To())
		return nil
	},
}

var sortCmd = &cobra.Command{
	Use:   "sort [folder]",
	Short: "Sort a folder",
	Long: `Sort a folder's children: folders first, then by title ignoring case and
accents. Without an address the top level is sorted.

Examples:
  bookmarks-cli sort /0
  bookmarks-cli sort --recursive`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at := domain.RootAddress()
		if len(args) == 1 {
			var err error
			if at, err = application.ValidateAddress("address", args[0]); err != nil {
				return err
			}
		}

		ws := GetWorkspace()
		out := cmd.OutOrStdout()
		if sortRecursive {
			c := commands.NewRecursiveSort(ws.Editor(), at)
			if err := ws.Execute(c); err != nil {
				return err
			}
			fmt.Fprintf(out, "Sorted %d folder(s)\n", c.Folders())
			return nil
		}

		c := commands.NewSortCommand(ws.Editor(), at)
		if err := ws.Execute(c); err != nil {
			return err
		}
		if c.Moves() == 0 {
			fmt.Fprintln(out, "Already sorted")
			return nil
		}
		fmt.Fprintf(out, "Sorted with %d move(s)\n", c.Moves())
		return nil
	},
}

func init() {
	moveCmd.Flags().IntVar(&movePos, "pos", -1, "position among the folder's children (default: append)")
	sortCmd.Flags().BoolVarP(&sortRecursive, "recursive", "r", false, "also sort every folder inside it")
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(sortCmd)
}

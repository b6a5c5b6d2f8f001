package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
)

var deleteCmd = &cobra.Command{
	Use:     "rm <address>...",
	Aliases: []string{"delete"},
	Short:   "Delete nodes",
	Long: `Delete bookmarks, separators or folders with everything inside them.

All addresses refer to the tree as it is before anything is removed, and a
node inside an already selected folder is deleted with it. The whole deletion
is one step in the undo history.

Examples:
  bookmarks-cli rm /0/3
  bookmarks-cli rm /0/3 /0/5 /2`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addrs := make([]domain.Address, 0, len(args))
		for _, s := range args {
			a, err := application.ValidateAddress("address", s)
			if err != nil {
				return err
			}
			if err := application.ValidateNotRoot("address", a); err != nil {
				return err
			}
			addrs = append(addrs, a)
		}

		ws := GetWorkspace()
		m := commands.NewDeleteMany(ws.Editor(), addrs)
		if err := ws.Execute(m); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d item(s)\n", m.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

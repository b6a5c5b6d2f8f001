package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <address>",
	Short: "Show one node",
	Long: `Show every attribute of one node, including metadata such as visit and
modification dates.

Example:
  bookmarks-cli show /0/2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := application.ValidateAddress("address", args[0])
		if err != nil {
			return err
		}
		n, err := GetWorkspace().Document().Resolve(at)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Address:     %s\n", at)
		fmt.Fprintf(out, "Kind:        %s\n", n.Kind)
		fmt.Fprintf(out, "Title:       %s\n", n.Title)
		if n.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", n.Description)
		}
		if n.IsFolder() {
			fmt.Fprintf(out, "Children:    %d\n", len(n.Children))
			return nil
		}
		if n.URL != "" {
			fmt.Fprintf(out, "URL:         %s\n", n.URL)
		}
		if n.Icon != "" {
			fmt.Fprintf(out, "Icon:        %s\n", n.Icon)
		}
		for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
			fmt.Fprintf(out, "%-12s %s\n", k+":", n.Meta[k])
		}
		return nil
	},
}

var (
	editTitle  string
	editURL    string
	editDesc   string
	editIcon   string
	editMeta   map[string]string
	editUnmeta []string
)

var editCmd = &cobra.Command{
	Use:   "edit <address>",
	Short: "Change attributes of a node",
	Long: `Change attributes of a node. Only the flags given are changed, and the
edit is a single undo step.

Examples:
  bookmarks-cli edit /0/2 --title "Go blog" --url https://go.dev/blog
  bookmarks-cli edit /1 --meta toolbar=true --unset-meta visited`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := application.ValidateAddress("address", args[0])
		if err != nil {
			return err
		}

		var patches []commands.Patch
		flags := cmd.Flags()
		for _, f := range []struct {
			flag  string
			attr  commands.Attr
			value string
		}{
			{"title", commands.AttrTitle, editTitle},
			{"url", commands.AttrURL, editURL},
			{"desc", commands.AttrDescription, editDesc},
			{"icon", commands.AttrIcon, editIcon},
		} {
			if flags.Changed(f.flag) {
				patches = append(patches, commands.Patch{Attr: f.attr, Value: f.value})
			}
		}
		if flags.Changed("url") {
			if err := application.ValidateURL("url", editURL); err != nil {
				return err
			}
		}
		for _, k := range slices.Sorted(maps.Keys(editMeta)) {
			patches = append(patches, commands.Patch{Attr: commands.AttrMeta, Key: k, Value: editMeta[k]})
		}
		for _, k := range editUnmeta {
			patches = append(patches, commands.Patch{Attr: commands.AttrMeta, Key: k, Unset: true})
		}
		if len(patches) == 0 {
			return fmt.Errorf("nothing to change: pass --title, --url, --desc, --icon or --meta")
		}

		ws := GetWorkspace()
		if err := ws.Execute(commands.NewEditCommand(ws.Editor(), at, patches...)); err != nil {
			return err
		}
		n, err := ws.Document().Resolve(at)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatNode(at, n))
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editURL, "url", "", "new URL (bookmarks only)")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "new description")
	editCmd.Flags().StringVar(&editIcon, "icon", "", "new icon URL (bookmarks only)")
	editCmd.Flags().StringToStringVar(&editMeta, "meta", nil, "set metadata key=value (bookmarks only)")
	editCmd.Flags().StringSliceVar(&editUnmeta, "unset-meta", nil, "remove metadata keys")

	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
}

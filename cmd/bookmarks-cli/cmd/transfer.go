package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bookmarked/internal/adapters/codec"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
	"bookmarked/internal/ports"
)

var (
	transferFormat string
	importReplace  bool
	importFolder   string
)

// codecFor picks the codec from --format, or from the file extension
func codecFor(path string) (ports.Codec, error) {
	if transferFormat != "" {
		return codec.ForFormat(transferFormat)
	}
	if path == "-" {
		return codec.ForFormat("json")
	}
	return codec.ForPath(path)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import bookmarks from a file",
	Long: `Import bookmarks from a browser export (.html) or from a .json or .yaml
file written by export. The nodes go into a new top-level folder unless
--replace is given, which swaps out the whole collection. Use - for stdin.

Examples:
  bookmarks-cli import ~/Downloads/bookmarks.html
  bookmarks-cli import backup.json --replace`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c, err := codecFor(path)
		if err != nil {
			return err
		}

		var data []byte
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		imported, err := c.Unmarshal(data)
		if err != nil {
			return err
		}

		ws := GetWorkspace()
		mode := commands.ImportIntoFolder
		if importReplace {
			mode = commands.ImportReplace
		}
		folder := importFolder
		if folder == "" {
			folder = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		at := domain.Address{len(ws.Document().Root().Children)}
		if err := ws.Execute(commands.NewImportCommand(ws.Editor(), mode, at, folder, imported.Root().Children)); err != nil {
			return err
		}

		counts := imported.Count()
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d bookmark(s) in %d folder(s)\n", counts.Bookmarks, counts.Folders)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export bookmarks to a file",
	Long: `Write the whole collection to a file. The format follows the extension:
.html is the Netscape bookmark file browsers import, .json and .yaml keep
every attribute. Use - for stdout (JSON unless --format is given).

Examples:
  bookmarks-cli export bookmarks.html
  bookmarks-cli export - --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		c, err := codecFor(path)
		if err != nil {
			return err
		}
		data, err := c.Marshal(GetWorkspace().Document())
		if err != nil {
			return err
		}

		if path == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		counts := GetWorkspace().Document().Count()
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d bookmark(s) to %s\n", counts.Bookmarks, path)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{importCmd, exportCmd} {
		c.Flags().StringVarP(&transferFormat, "format", "f", "", "json, yaml or html (default: from the file extension)")
		rootCmd.AddCommand(c)
	}
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace the whole collection")
	importCmd.Flags().StringVar(&importFolder, "folder", "", "title of the new folder (default: file name)")
}

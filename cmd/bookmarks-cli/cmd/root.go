package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bookmarked/internal/adapters/sqlite"
	"bookmarked/internal/application"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/config"
)

var (
	cfgFile string
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
	ws     *workspace.Workspace
)

var rootCmd = &cobra.Command{
	Use:   "bookmarks-cli",
	Short: "CLI for editing a bookmark collection",
	Long: `bookmarks-cli edits the bookmark collection shared with the bookmarks
terminal editor and the MCP server.

Nodes are addressed by their position in the tree: /0 is the first top-level
node, /0/2 the third child of that folder. Run "bookmarks-cli tree" to see them.
Each command is one undoable step and the collection is saved when it succeeds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return openWorkspace(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ws == nil {
			return nil
		}
		return ws.Save(cmd.Context())
	},
}

func openWorkspace(ctx context.Context) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = config.ExpandHome(dbPath)
	}

	logger, err = application.NewLogger(cfg.LogFile, verbose, !verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	store, err := sqlite.Open(cfg.DBPath, sqlite.WithLogger(logger))
	if err != nil {
		return err
	}
	ws, err = workspace.Open(ctx, store,
		workspace.WithLogger(logger),
		workspace.WithUndoLimit(cfg.UndoLimit),
	)
	if err != nil {
		store.Close()
		return err
	}
	return nil
}

// Execute runs the root command
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if ws != nil {
		if cerr := ws.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/bookmarked/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "bookmark database (default from config or "+config.DefaultDBPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
}

// GetWorkspace returns the opened workspace
func GetWorkspace() *workspace.Workspace {
	return ws
}

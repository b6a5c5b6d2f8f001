package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"bookmarked/internal/adapters/browser"
	"bookmarked/internal/adapters/sqlite"
	"bookmarked/internal/adapters/tui"
	"bookmarked/internal/adapters/watch"
	"bookmarked/internal/adapters/web"
	"bookmarked/internal/application"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/config"
	"bookmarked/internal/domain"
	"bookmarked/internal/iteration"
	"bookmarked/internal/projection"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgFile := flag.String("config", "", "config file (default: ~/.config/bookmarked/config.yaml)")
	dbPath := flag.String("db", "", "bookmark database (overrides config)")
	verbose := flag.Bool("verbose", false, "log debug output to the log file")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	if *dbPath != "" {
		cfg.DBPath = config.ExpandHome(*dbPath)
	}

	// The terminal belongs to the UI, so logs only go to the log file.
	logger, err := application.NewLogger(cfg.LogFile, *verbose, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := sqlite.Open(cfg.DBPath, sqlite.WithLogger(logger))
	if err != nil {
		return err
	}
	ws, err := workspace.Open(ctx, store,
		workspace.WithLogger(logger),
		workspace.WithUndoLimit(cfg.UndoLimit),
	)
	if err != nil {
		_ = store.Close()
		return err
	}
	defer ws.Close()

	board := iteration.NewStatusBoard()
	proj := projection.New(ws.Editor(),
		projection.WithStatusSource(board),
		projection.WithLogger(logger),
	)
	ws.Editor().AddObserver(proj)

	sched := iteration.NewScheduler()
	client := web.NewClient(web.WithLogger(logger))
	holderOpts := []iteration.HolderOption{
		iteration.WithTimeout(cfg.FetchTimeout),
		iteration.WithLogger(logger),
	}
	links := iteration.NewHolder(iteration.LinkCheck{}, web.LinkChecker{Client: client},
		sched, board, ws.Editor(), holderOpts...)
	icons := iteration.NewHolder(iteration.IconRefresh{OnIcon: func(n *domain.Node, icon string) {
		if err := ws.SetIcon(n, icon); err != nil {
			logger.Warn("failed to store icon", zap.String("url", n.URL), zap.Error(err))
		}
	}}, web.IconFinder{Client: client}, sched, board, ws.Editor(), holderOpts...)

	changes := make(chan struct{}, 1)
	if w, err := watch.New(cfg.DBPath, watch.WithLogger(logger)); err != nil {
		logger.Warn("not watching for external changes", zap.Error(err))
	} else {
		defer w.Close()
		go func() {
			err := w.Run(ctx, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})
			if err != nil && ctx.Err() == nil {
				logger.Warn("file watcher stopped", zap.Error(err))
			}
		}()
	}

	return tui.Run(tui.Config{
		Workspace:   ws,
		Projection:  proj,
		Scheduler:   sched,
		LinkCheck:   links,
		IconRefresh: icons,
		Opener:      browser.NewOpener(),
		Changes:     changes,
		Logger:      logger,
	})
}

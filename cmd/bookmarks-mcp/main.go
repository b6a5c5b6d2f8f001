package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "bookmarked/internal/adapters/mcp"
	"bookmarked/internal/adapters/sqlite"
	"bookmarked/internal/application"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/config"
)

func main() {
	cfgFile := flag.String("config", "", "config file (default: ~/.config/bookmarked/config.yaml)")
	dbFlag := flag.String("db", "", "bookmark database (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		log.Fatalf("bookmarks-mcp: %v", err)
	}
	if *dbFlag != "" {
		cfg.DBPath = config.ExpandHome(*dbFlag)
	}

	// stdout carries the protocol, so only the log file gets output
	logger, err := application.NewLogger(cfg.LogFile, false, true)
	if err != nil {
		log.Fatalf("bookmarks-mcp: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := sqlite.Open(cfg.DBPath, sqlite.WithLogger(logger))
	if err != nil {
		log.Fatalf("bookmarks-mcp: %v", err)
	}
	ws, err := workspace.Open(context.Background(), store,
		workspace.WithLogger(logger),
		workspace.WithUndoLimit(cfg.UndoLimit),
	)
	if err != nil {
		log.Fatalf("bookmarks-mcp: %v", err)
	}
	defer ws.Close()

	mcpServer := server.NewMCPServer(
		"bookmarks-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.NewTools(ws, logger).Register(mcpServer)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("bookmarks-mcp: %v", err)
	}
}

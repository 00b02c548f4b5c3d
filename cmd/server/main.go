// Package main provides the 21Qubz assistant server: the HTTP API, the chat page and
// the MCP endpoint.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bull/qubz-assistant/internal/api"
	"github.com/bull/qubz-assistant/internal/app"
	"github.com/bull/qubz-assistant/internal/config"
	"github.com/bull/qubz-assistant/internal/loader"
	mcpserver "github.com/bull/qubz-assistant/internal/mcp"
	"github.com/bull/qubz-assistant/internal/storage"
)

var version = "dev"

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	config.LoadDotEnv(slog.Default())
	cfg := config.FromEnv()
	logger := cfg.NewLogger()

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// Create context that cancels on SIGTERM/SIGINT
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	a, err := app.New(ctx, cfg, logger, true)
	if err != nil {
		logger.Error("Startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	if cfg.WatchDocs {
		watcher, err := loader.NewWatcher(a.Loader, cfg.DocsDir, func(doc storage.Document) {
			a.Store.Add(doc)
		}, logger)
		if err != nil {
			logger.Warn("Document watcher disabled", "error", err)
		} else {
			go func() {
				if err := watcher.Run(ctx); err != nil {
					logger.Warn("Document watcher stopped", "error", err)
				}
			}()
		}
	}

	mcpServer := mcpserver.NewServer(&mcpserver.Config{
		Chat:    a.Chat,
		Store:   a.Store,
		Version: version,
	})

	apiCfg := api.Config{
		Chat:    a.Chat,
		Store:   a.Store,
		Loader:  a.Loader,
		Runner:  a.Runner(false),
		Reports: a.Reports,
		MCP:     mcpserver.NewHTTPHandler(mcpServer, nil),
		Logger:  logger,
	}
	// Interfaces stay nil when the archive is off.
	if a.Archive != nil {
		apiCfg.Archive = a.Archive
		apiCfg.Backend = a.Archive
	}
	server := api.NewServer(apiCfg)
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)

	if cfg.ServerMode {
		if err := server.ListenAndServe(ctx, addr); err != nil {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
		return
	}

	// Stdio mode: MCP over stdin/stdout for local clients, HTTP in the background
	go func() {
		if err := server.ListenAndServe(ctx, addr); err != nil {
			logger.Warn("HTTP server error", "error", err)
		}
	}()

	logger.Info("Starting 21Qubz assistant MCP server (stdio mode)")
	if err := mcpServer.Run(ctx); err != nil {
		logger.Error("MCP server error", "error", err)
		os.Exit(1)
	}
}

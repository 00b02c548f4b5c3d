// Package app assembles the assistant from its configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bull/qubz-assistant/internal/benchmark"
	"github.com/bull/qubz-assistant/internal/chat"
	"github.com/bull/qubz-assistant/internal/config"
	"github.com/bull/qubz-assistant/internal/loader"
	"github.com/bull/qubz-assistant/internal/provider"
	"github.com/bull/qubz-assistant/internal/retrieval"
	"github.com/bull/qubz-assistant/internal/storage"
)

// App holds the wired components shared by the binaries.
type App struct {
	Config    *config.Config
	Store     *storage.Store
	Loader    *loader.Loader
	Archive   *storage.QdrantArchive // nil when QDRANT_HOST is unset
	Providers *provider.Registry
	Chat      *chat.Service
	Reports   *benchmark.ReportStore
	Logger    *slog.Logger
}

// New loads the documents and builds the providers and chat service.
// The archive is connected only when withArchive is set and the configuration enables it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, withArchive bool) (*App, error) {
	tables := retrieval.DefaultTables()
	if cfg.RetrievalTables != "" {
		t, err := retrieval.LoadTables(cfg.RetrievalTables)
		if err != nil {
			return nil, fmt.Errorf("load retrieval tables: %w", err)
		}
		tables = t
	}

	a := &App{
		Config:  cfg,
		Store:   storage.NewStore(),
		Loader:  loader.New(logger),
		Reports: benchmark.NewReportStore(cfg.ReportsDir),
		Logger:  logger,
	}

	result, err := a.Loader.LoadDir(ctx, cfg.DocsDir)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	for _, doc := range result.Documents {
		a.Store.Add(doc)
	}

	if withArchive && cfg.ArchiveEnabled() {
		if err := a.restoreArchive(ctx); err != nil {
			return nil, err
		}
	}

	registry, err := NewRegistry(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Providers = registry

	a.Chat = chat.NewService(chat.Config{
		Store:     a.Store,
		Providers: registry,
		Tables:    tables,
		Timeout:   cfg.ProviderTimeout,
		Logger:    logger,
	})

	logger.Info("Assistant ready",
		"documents", a.Store.Len(),
		"providers", registry.Names(),
		"default", registry.Default(),
		"archive", a.Archive != nil,
	)
	return a, nil
}

func (a *App) restoreArchive(ctx context.Context) error {
	archive, err := storage.NewQdrantArchive(a.Config.QdrantHost, a.Config.QdrantPort)
	if err != nil {
		return fmt.Errorf("connect to qdrant: %w", err)
	}
	if err := archive.EnsureCollection(ctx); err != nil {
		archive.Close()
		return fmt.Errorf("ensure collection: %w", err)
	}

	docs, err := archive.LoadAll(ctx)
	if err != nil {
		archive.Close()
		return fmt.Errorf("restore uploads: %w", err)
	}
	for _, doc := range docs {
		a.Store.Add(doc)
	}
	a.Logger.Info("Restored archived uploads", "count", len(docs))

	a.Archive = archive
	return nil
}

// NewRegistry creates an adapter for every provider with an API key.
func NewRegistry(ctx context.Context, cfg *config.Config) (*provider.Registry, error) {
	registry := provider.NewRegistry(cfg.DefaultProvider)

	if cfg.GroqAPIKey != "" {
		groq, err := provider.NewGroq(cfg.GroqAPIKey, cfg.GroqBaseURL, provider.Options{
			Model:       cfg.GroqModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		registry.Register(groq)
	}

	if cfg.GeminiAPIKey != "" {
		gemini, err := provider.NewGemini(ctx, cfg.GeminiAPIKey, provider.Options{
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
		if err != nil {
			return nil, err
		}
		registry.Register(gemini)
	}

	return registry, nil
}

// Runner creates a benchmark runner over the configured providers.
func (a *App) Runner(parallel bool) *benchmark.Runner {
	return benchmark.NewRunner(a.Chat, benchmark.RunnerConfig{
		Providers: a.Config.ConfiguredProviders(),
		Pause:     a.Config.BenchmarkPause,
		Parallel:  parallel,
		Timeout:   a.Config.ProviderTimeout,
		Logger:    a.Logger,
	})
}

// Close releases the archive connection.
func (a *App) Close() {
	if a.Archive != nil {
		if err := a.Archive.Close(); err != nil {
			a.Logger.Warn("Failed to close archive", "error", err)
		}
	}
}

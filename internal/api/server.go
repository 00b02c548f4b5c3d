// Package api serves the assistant over HTTP: chat, uploads, document listing,
// benchmark runs and reports, health, and the MCP endpoint.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/bull/qubz-assistant/internal/benchmark"
	"github.com/bull/qubz-assistant/internal/chat"
	"github.com/bull/qubz-assistant/internal/loader"
	"github.com/bull/qubz-assistant/internal/storage"
)

// Archiver persists uploaded documents.
type Archiver interface {
	Archive(ctx context.Context, doc storage.Document) error
}

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Config holds server dependencies. Archive, Runner and MCP are optional.
type Config struct {
	Chat       *chat.Service
	Store      *storage.Store
	Loader     *loader.Loader
	Archive    Archiver
	Backend    HealthChecker // checked by /health when set
	Runner     *benchmark.Runner
	Reports    *benchmark.ReportStore
	MCP        http.Handler
	CORSOrigin string
	Logger     *slog.Logger
}

// Server is the HTTP surface of the assistant.
type Server struct {
	chat    *chat.Service
	store   *storage.Store
	loader  *loader.Loader
	archive Archiver
	backend HealthChecker
	runner  *benchmark.Runner
	reports *benchmark.ReportStore
	mcp     http.Handler
	origin  string
	logger  *slog.Logger

	benchMu sync.Mutex
	running bool
}

// ErrBenchmarkRunning is returned while another benchmark run is in progress.
var ErrBenchmarkRunning = errors.New("a benchmark is already running")

// maxUploadSize bounds multipart uploads.
const maxUploadSize = 32 << 20

// NewServer creates the HTTP server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	l := cfg.Loader
	if l == nil {
		l = loader.New(logger)
	}
	origin := cfg.CORSOrigin
	if origin == "" {
		origin = "*"
	}
	return &Server{
		chat:    cfg.Chat,
		store:   cfg.Store,
		loader:  l,
		archive: cfg.Archive,
		backend: cfg.Backend,
		runner:  cfg.Runner,
		reports: cfg.Reports,
		mcp:     cfg.MCP,
		origin:  origin,
		logger:  logger,
	}
}

// Handler returns the routed and instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", NewLandingHandler())
	mux.HandleFunc("GET /health", NewHealthHandler(s.store, s.backend))

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /api/documents", s.handleDocuments)

	if s.runner != nil {
		mux.HandleFunc("POST /api/benchmark/run", s.handleBenchmarkRun)
	}
	if s.reports != nil {
		mux.HandleFunc("GET /api/benchmark/results", s.handleBenchmarkList)
		mux.HandleFunc("GET /api/benchmark/results/{filename}", s.handleBenchmarkGet)
		mux.HandleFunc("DELETE /api/benchmark/results/{filename}", s.handleBenchmarkDelete)
	}
	mux.HandleFunc("GET /api/benchmark/info", s.handleBenchmarkInfo)

	if s.mcp != nil {
		mux.Handle("/mcp", s.mcp)
	}

	return Chain(mux,
		Recover(s.logger),
		OTel("qubz-assistant"),
		Logger(s.logger),
		CORS(s.origin),
	)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("Shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	}
}

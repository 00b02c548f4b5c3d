package benchmark

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/bull/qubz-assistant/internal/chat"
)

// DefaultPause separates scenarios to stay under upstream rate limits.
const DefaultPause = time.Second

// Asker runs one message through the chat pipeline with a named provider.
type Asker interface {
	Ask(ctx context.Context, providerName, message string) (*chat.Exchange, error)
}

// RunnerConfig holds runner settings.
type RunnerConfig struct {
	Providers []string      // Run in this order for every scenario
	Pause     time.Duration // Minimum spacing between scenarios
	Parallel  bool          // Call the providers of a scenario concurrently
	Timeout   time.Duration // Per provider call, 0 means none
	Logger    *slog.Logger
}

// Runner executes scenarios against every configured provider. A failing provider is
// recorded and never stops the others.
type Runner struct {
	asker     Asker
	providers []string
	pause     time.Duration
	parallel  bool
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewRunner creates a runner.
func NewRunner(asker Asker, cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		asker:     asker,
		providers: cfg.Providers,
		pause:     cfg.Pause,
		parallel:  cfg.Parallel,
		timeout:   cfg.Timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// Providers returns the provider names in run order.
func (r *Runner) Providers() []string {
	return r.providers
}

// Run executes scenarios and returns the report. Only context cancellation ends a run
// early.
func (r *Runner) Run(ctx context.Context, testType string, scenarios []Scenario) (*Report, error) {
	if len(r.providers) == 0 {
		return nil, ErrNoProviders
	}

	start := r.now()
	runID := uuid.New().String()
	r.logger.Info("Starting benchmark",
		"run", runID,
		"type", testType,
		"scenarios", len(scenarios),
		"providers", r.providers,
		"parallel", r.parallel,
	)

	limit := rate.Inf
	if r.pause > 0 {
		limit = rate.Every(r.pause)
	}
	limiter := rate.NewLimiter(limit, 1)

	records := make([]Record, 0, len(scenarios)*len(r.providers))
	for _, sc := range scenarios {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("benchmark interrupted: %w", err)
		}

		r.logger.Info("Testing scenario", "name", sc.Name)
		batch := r.runScenario(ctx, sc)
		for _, rec := range batch {
			r.logger.Info("Scenario result",
				"name", sc.Name,
				"provider", rec.Provider,
				"response_time_ms", rec.ResponseTime,
				"success", rec.Success,
			)
		}
		records = append(records, batch...)
	}

	now := r.now()
	report := &Report{
		RunID:           runID,
		TestType:        testType,
		Summary:         Summarize(records, r.providers, len(scenarios), now),
		DetailedResults: records,
		GeneratedAt:     now,
	}

	r.logger.Info("Benchmark complete",
		"run", runID,
		"records", len(records),
		"fastest", report.Summary.Fastest,
		"duration", now.Sub(start),
	)
	return report, nil
}

func (r *Runner) runScenario(ctx context.Context, sc Scenario) []Record {
	out := make([]Record, len(r.providers))

	if !r.parallel {
		for i, name := range r.providers {
			out[i] = r.runOne(ctx, sc, name)
		}
		return out
	}

	var g errgroup.Group
	for i, name := range r.providers {
		g.Go(func() error {
			out[i] = r.runOne(ctx, sc, name)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (r *Runner) runOne(ctx context.Context, sc Scenario, providerName string) Record {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	ex, err := r.asker.Ask(ctx, providerName, sc.Prompt)
	elapsed := time.Since(start)

	rec := Record{
		ID:           uuid.New().String(),
		Provider:     providerName,
		TestName:     sc.Name,
		Prompt:       sc.Prompt,
		ResponseTime: elapsed.Milliseconds(),
		Timestamp:    r.now(),
		RelevantDocs: []string{},
	}
	if ex != nil {
		rec.RelevantDocs = ex.Sources()
		rec.DocsFound = len(rec.RelevantDocs)
	}
	if err != nil {
		rec.Error = err.Error()
		r.logger.Warn("Provider failed", "provider", providerName, "scenario", sc.Name, "error", err)
		return rec
	}

	rec.Success = true
	rec.Response = ex.Generation.Text
	rec.ResponseLength = utf8.RuneCountInString(rec.Response)
	rec.TokenInfo = ex.Generation.Usage
	return rec
}

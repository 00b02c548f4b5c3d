package benchmark

import (
	"math"
	"time"

	"github.com/bull/qubz-assistant/internal/provider"
)

// Record is the outcome of one scenario against one provider. Records are never
// modified after the runner creates them.
type Record struct {
	ID             string         `json:"id"`
	Provider       string         `json:"provider"`
	TestName       string         `json:"testName"`
	Prompt         string         `json:"prompt"`
	Response       string         `json:"response"`
	ResponseTime   int64          `json:"responseTime"` // milliseconds
	TokenInfo      provider.Usage `json:"tokenInfo"`
	Error          string         `json:"error,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	ResponseLength int            `json:"responseLength"`
	Success        bool           `json:"success"`
	RelevantDocs   []string       `json:"relevantDocs"`
	DocsFound      int            `json:"docsFound"`
}

// ProviderStats aggregates the successful records of one provider.
type ProviderStats struct {
	Count               int     `json:"count"`
	AvgResponseTime     float64 `json:"avgResponseTime"`
	MinResponseTime     int64   `json:"minResponseTime"`
	MaxResponseTime     int64   `json:"maxResponseTime"`
	AvgResponseLength   float64 `json:"avgResponseLength"`
	TotalTokens         int     `json:"totalTokens"`
	AvgTokensPerRequest float64 `json:"avgTokensPerRequest"`
	SuccessRate         float64 `json:"successRate"`
}

// Summary compares providers over one run.
type Summary struct {
	Providers     map[string]*ProviderStats `json:"providers"`
	TotalTests    int                       `json:"totalTests"`
	Fastest       string                    `json:"fastest,omitempty"`
	FastestMargin float64                   `json:"fastestMargin,omitempty"` // ms faster on average than the runner-up
	Timestamp     time.Time                 `json:"timestamp"`
}

// Report is the persisted form of a run.
type Report struct {
	RunID           string    `json:"runId"`
	TestType        string    `json:"testType"`
	Summary         Summary   `json:"summary"`
	DetailedResults []Record  `json:"detailedResults"`
	GeneratedAt     time.Time `json:"generatedAt"`
}

// Summarize computes per-provider statistics. Providers are listed in order so that a
// provider without any successful record still appears with nil stats. totalTests is the
// number of scenarios run.
func Summarize(records []Record, providers []string, totalTests int, now time.Time) Summary {
	summary := Summary{
		Providers:  make(map[string]*ProviderStats, len(providers)),
		TotalTests: totalTests,
		Timestamp:  now,
	}

	for _, name := range providers {
		summary.Providers[name] = providerStats(records, name)
	}

	best, second := math.Inf(1), math.Inf(1)
	for _, name := range providers {
		stats := summary.Providers[name]
		if stats == nil {
			continue
		}
		switch {
		case stats.AvgResponseTime < best:
			second = best
			best = stats.AvgResponseTime
			summary.Fastest = name
		case stats.AvgResponseTime < second:
			second = stats.AvgResponseTime
		}
	}
	if summary.Fastest != "" && !math.IsInf(second, 1) {
		summary.FastestMargin = second - best
	}
	return summary
}

func providerStats(records []Record, name string) *ProviderStats {
	var (
		attempts int
		stats    ProviderStats
		timeSum  int64
		lenSum   int
	)

	for _, r := range records {
		if r.Provider != name {
			continue
		}
		attempts++
		if !r.Success {
			continue
		}
		if stats.Count == 0 || r.ResponseTime < stats.MinResponseTime {
			stats.MinResponseTime = r.ResponseTime
		}
		if r.ResponseTime > stats.MaxResponseTime {
			stats.MaxResponseTime = r.ResponseTime
		}
		stats.Count++
		timeSum += r.ResponseTime
		lenSum += r.ResponseLength
		stats.TotalTokens += r.TokenInfo.TotalTokens
	}

	if stats.Count == 0 {
		return nil
	}

	n := float64(stats.Count)
	stats.AvgResponseTime = float64(timeSum) / n
	stats.AvgResponseLength = float64(lenSum) / n
	stats.AvgTokensPerRequest = float64(stats.TotalTokens) / n
	stats.SuccessRate = n / float64(attempts)
	return &stats
}

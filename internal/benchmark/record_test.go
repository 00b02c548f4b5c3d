package benchmark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/qubz-assistant/internal/provider"
)

func TestSummarize(t *testing.T) {
	records := []Record{
		{Provider: "groq", Success: true, ResponseTime: 200, ResponseLength: 100, TokenInfo: provider.Usage{TotalTokens: 50}},
		{Provider: "groq", Success: true, ResponseTime: 400, ResponseLength: 300, TokenInfo: provider.Usage{TotalTokens: 150}},
		{Provider: "groq", Success: false, ResponseTime: 10},
		{Provider: "gemini", Success: true, ResponseTime: 900, ResponseLength: 500, TokenInfo: provider.Usage{TotalTokens: 80}},
		{Provider: "gemini", Success: true, ResponseTime: 700, ResponseLength: 700, TokenInfo: provider.Usage{TotalTokens: 120}},
		{Provider: "gemini", Success: true, ResponseTime: 800, ResponseLength: 600, TokenInfo: provider.Usage{TotalTokens: 100}},
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	s := Summarize(records, []string{"groq", "gemini"}, 3, now)

	groq := s.Providers["groq"]
	require.NotNil(t, groq)
	assert.Equal(t, 2, groq.Count)
	assert.Equal(t, 300.0, groq.AvgResponseTime)
	assert.Equal(t, int64(200), groq.MinResponseTime)
	assert.Equal(t, int64(400), groq.MaxResponseTime)
	assert.Equal(t, 200.0, groq.AvgResponseLength)
	assert.Equal(t, 200, groq.TotalTokens)
	assert.Equal(t, 100.0, groq.AvgTokensPerRequest)
	assert.InDelta(t, 2.0/3.0, groq.SuccessRate, 1e-9)

	gemini := s.Providers["gemini"]
	require.NotNil(t, gemini)
	assert.Equal(t, 800.0, gemini.AvgResponseTime)
	assert.Equal(t, int64(700), gemini.MinResponseTime)
	assert.Equal(t, 1.0, gemini.SuccessRate)

	assert.Equal(t, 3, s.TotalTests)
	assert.Equal(t, "groq", s.Fastest)
	assert.Equal(t, 500.0, s.FastestMargin)
	assert.Equal(t, now, s.Timestamp)
}

func TestSummarize_NoSuccesses(t *testing.T) {
	records := []Record{{Provider: "groq", Success: false}}

	s := Summarize(records, []string{"groq", "gemini"}, 1, time.Now())

	assert.Contains(t, s.Providers, "groq")
	assert.Nil(t, s.Providers["groq"])
	assert.Nil(t, s.Providers["gemini"])
	assert.Empty(t, s.Fastest)
}

func TestScenariosFor(t *testing.T) {
	tests := []struct {
		testType string
		count    int
	}{
		{"", 3},
		{"quick", 3},
		{"FULL", 10},
		{" stress ", 2},
	}
	for _, tt := range tests {
		got, err := ScenariosFor(tt.testType)
		require.NoError(t, err, tt.testType)
		assert.Len(t, got, tt.count, tt.testType)
	}

	_, err := ScenariosFor("endurance")
	assert.ErrorIs(t, err, ErrUnknownTestType)
}

func TestNormalizeTestType(t *testing.T) {
	assert.Equal(t, TestQuick, NormalizeTestType(""))
	assert.Equal(t, TestQuick, NormalizeTestType(" QUICK "))
	assert.Equal(t, TestStress, NormalizeTestType("Stress"))
	assert.Equal(t, "endurance", NormalizeTestType("endurance"))
}

package benchmark

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrintReport(t *testing.T) {
	report := &Report{
		TestType: TestQuick,
		Summary: Summary{
			Providers: map[string]*ProviderStats{
				"groq":   {Count: 1, AvgResponseTime: 300, MinResponseTime: 300, MaxResponseTime: 300, SuccessRate: 1},
				"gemini": nil,
			},
			TotalTests:    1,
			Fastest:       "groq",
			FastestMargin: 250,
		},
		DetailedResults: []Record{
			{TestName: "Nieuwe Klant Toevoegen", Provider: "groq", ResponseTime: 300, Success: true, RelevantDocs: []string{"Layout/relaties.txt"}, DocsFound: 1},
			{TestName: "Nieuwe Klant Toevoegen", Provider: "gemini", ResponseTime: 12, Success: false},
		},
	}

	var buf bytes.Buffer
	PrintReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "AI PROVIDER BENCHMARK SUMMARY")
	assert.Contains(t, out, "SPEED WINNER: GROQ (250ms faster on average)")
	assert.Contains(t, out, "Total tests performed: 1")
	assert.Contains(t, out, "ERR")
	assert.Contains(t, out, "Nieuwe Klant Toevoegen (groq): 1 docs - Layout/relaties.txt")
	assert.NotContains(t, out, "(gemini): ")
}

func TestPrintReportList(t *testing.T) {
	var buf bytes.Buffer
	PrintReportList(&buf, nil)
	assert.Contains(t, buf.String(), "No benchmark reports found.")

	buf.Reset()
	PrintReportList(&buf, []ReportFile{{Filename: "benchmark-quick-1.json", Size: 42, Modified: time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)}})
	assert.Contains(t, buf.String(), "benchmark-quick-1.json")
	assert.Contains(t, buf.String(), "2026-03-04 05:06:07")
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "abc", truncateName("abc", 30))
	assert.Equal(t, "ab", truncateName("abc", 2))
}

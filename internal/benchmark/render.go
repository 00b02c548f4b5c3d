package benchmark

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

const rule = "============================================================"

// PrintSummary writes the provider comparison block.
func PrintSummary(w io.Writer, s Summary) {
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "AI PROVIDER BENCHMARK SUMMARY")
	fmt.Fprintln(w, rule)

	names := make([]string, 0, len(s.Providers))
	for name := range s.Providers {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Provider\tAvg time\tMin\tMax\tSuccess\tAvg length\tAvg tokens")
	for _, name := range names {
		st := s.Providers[name]
		if st == nil {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t0.0%%\t-\t-\n", strings.ToUpper(name))
			continue
		}
		fmt.Fprintf(tw, "%s\t%.0fms\t%dms\t%dms\t%.1f%%\t%.0f\t%.0f\n",
			strings.ToUpper(name),
			st.AvgResponseTime,
			st.MinResponseTime,
			st.MaxResponseTime,
			st.SuccessRate*100,
			st.AvgResponseLength,
			st.AvgTokensPerRequest,
		)
	}
	tw.Flush()

	if s.Fastest != "" && s.FastestMargin > 0 {
		fmt.Fprintf(w, "\nSPEED WINNER: %s (%.0fms faster on average)\n", strings.ToUpper(s.Fastest), s.FastestMargin)
	}
	fmt.Fprintf(w, "\nTotal tests performed: %d\n", s.TotalTests)
	fmt.Fprintln(w, rule)
}

// PrintReport writes the summary, one row per record and the documents each test used.
func PrintReport(w io.Writer, r *Report) {
	PrintSummary(w, r.Summary)

	fmt.Fprintln(w, "\nDETAILED RESULTS:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tProvider\tTime(ms)\tTokens\tLength\tStatus")
	for _, rec := range r.DetailedResults {
		status := "OK"
		if !rec.Success {
			status = "ERR"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			truncateName(rec.TestName, 30),
			strings.ToUpper(rec.Provider),
			rec.ResponseTime,
			rec.TokenInfo.TotalTokens,
			rec.ResponseLength,
			status,
		)
	}
	tw.Flush()

	fmt.Fprintln(w, "\nDOCUMENT USAGE:")
	for _, rec := range r.DetailedResults {
		if len(rec.RelevantDocs) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%s): %d docs - %s\n", rec.TestName, rec.Provider, rec.DocsFound, strings.Join(rec.RelevantDocs, ", "))
	}
}

// PrintReportList writes saved reports, numbered newest first.
func PrintReportList(w io.Writer, files []ReportFile) {
	if len(files) == 0 {
		fmt.Fprintln(w, "No benchmark reports found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFile\tSize\tModified")
	for i, f := range files {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", i+1, f.Filename, f.Size, f.Modified.Format("2006-01-02 15:04:05"))
	}
	tw.Flush()
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

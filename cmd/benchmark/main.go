// Package main provides the qubz-benchmark CLI for comparing the LLM providers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bull/qubz-assistant/internal/app"
	"github.com/bull/qubz-assistant/internal/benchmark"
	"github.com/bull/qubz-assistant/internal/config"
)

var (
	parallel   bool
	pause      time.Duration
	reportsDir string
	noSave     bool
)

var rootCmd = &cobra.Command{
	Use:   "qubz-benchmark",
	Short: "21Qubz assistant provider benchmark",
	Long:  "CLI tool for running the assistant scenarios against every configured provider and inspecting saved reports",
}

var runCmd = &cobra.Command{
	Use:   "run [quick|full|stress]",
	Short: "Run a scenario set against every configured provider",
	Long: `Loads the reference documents, runs every scenario of the chosen set against each
provider with a configured API key, prints the comparison and saves the report.

Environment variables:
  GROQ_API_KEY      Groq API key
  GEMINI_API_KEY    Gemini API key
  DOCS_DIR          Reference documents (default: ./docs)
  REPORTS_DIR       Report directory (default: ./benchmarks)
  BENCHMARK_PAUSE   Pause between scenarios (default: 1s)
  PROVIDER_TIMEOUT  Timeout per provider call (default: 60s)`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: benchmark.TestTypes,
	RunE:      runBenchmark,
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  showReport,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	Args:  cobra.NoArgs,
	RunE:  listReports,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Delete a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteReport,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&reportsDir, "reports-dir", "", "report directory (overrides REPORTS_DIR)")

	runCmd.Flags().BoolVar(&parallel, "parallel", false, "call the providers of a scenario concurrently")
	runCmd.Flags().DurationVar(&pause, "pause", -1, "pause between scenarios (overrides BENCHMARK_PAUSE)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print the report without saving it")

	rootCmd.AddCommand(runCmd, showCmd, listCmd, deleteCmd)
}

func main() {
	// Load .env file if present (local development), ignore if missing (production)
	config.LoadDotEnv(nil)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	cfg := config.FromEnv()
	if reportsDir != "" {
		cfg.ReportsDir = reportsDir
	}
	return cfg
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()

	var testType string
	if len(args) == 1 {
		testType = args[0]
	}
	testType = benchmark.NormalizeTestType(testType)
	scenarios, err := benchmark.ScenariosFor(testType)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if pause >= 0 {
		cfg.BenchmarkPause = pause
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Progress goes to the console; keep the logger for warnings.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	a, err := app.New(ctx, cfg, logger, false)
	if err != nil {
		return err
	}
	defer a.Close()

	runner := a.Runner(parallel)
	fmt.Printf("Running %s benchmark: %d scenarios against %v (%d documents loaded)\n",
		testType, len(scenarios), runner.Providers(), a.Store.Len())
	fmt.Println()

	start := time.Now()
	report, err := runner.Run(ctx, testType, scenarios)
	if err != nil {
		return fmt.Errorf("Benchmark failed: %w", err)
	}

	benchmark.PrintReport(os.Stdout, report)

	if !noSave {
		name, err := a.Reports.Save(report)
		if err != nil {
			return fmt.Errorf("Failed to save report: %w", err)
		}
		fmt.Println()
		fmt.Printf("Report saved: %s\n", name)
	}

	fmt.Printf("Total time: %s\n", time.Since(start).Round(time.Second))
	return nil
}

func showReport(cmd *cobra.Command, args []string) error {
	store := benchmark.NewReportStore(loadConfig().ReportsDir)
	report, err := store.Load(args[0])
	if err != nil {
		return err
	}
	benchmark.PrintReport(os.Stdout, report)
	return nil
}

func listReports(cmd *cobra.Command, args []string) error {
	store := benchmark.NewReportStore(loadConfig().ReportsDir)
	files, err := store.List()
	if err != nil {
		return err
	}
	benchmark.PrintReportList(os.Stdout, files)
	return nil
}

func deleteReport(cmd *cobra.Command, args []string) error {
	store := benchmark.NewReportStore(loadConfig().ReportsDir)
	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

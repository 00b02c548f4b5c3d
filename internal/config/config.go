// Package config reads assistant settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the binaries need.
type Config struct {
	Port            int
	DocsDir         string
	ReportsDir      string
	DefaultProvider string

	GroqAPIKey  string
	GroqModel   string
	GroqBaseURL string

	GeminiAPIKey string
	GeminiModel  string

	Temperature float64
	MaxTokens   int

	RetrievalTables string // Optional YAML replacing the embedded tables

	QdrantHost string // Empty disables the archive
	QdrantPort int

	WatchDocs       bool
	ServerMode      bool
	BenchmarkPause  time.Duration
	ProviderTimeout time.Duration
	LogLevel        slog.Level
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv(logger *slog.Logger) {
	if err := godotenv.Load(); err != nil && logger != nil {
		logger.Debug("No .env file found, using environment variables")
	}
}

// FromEnv reads the configuration from environment variables.
func FromEnv() *Config {
	return &Config{
		Port:            getEnvInt("PORT", 3001),
		DocsDir:         getEnv("DOCS_DIR", "./docs"),
		ReportsDir:      getEnv("REPORTS_DIR", "./benchmarks"),
		DefaultProvider: strings.ToLower(getEnv("DEFAULT_PROVIDER", "gemini")),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GroqModel:       getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.7),
		MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 1000),
		RetrievalTables: os.Getenv("RETRIEVAL_TABLES"),
		QdrantHost:      os.Getenv("QDRANT_HOST"),
		QdrantPort:      getEnvInt("QDRANT_PORT", 6334),
		WatchDocs:       getEnvBool("WATCH_DOCS", false),
		ServerMode:      getEnvBool("SERVER_MODE", true),
		BenchmarkPause:  getEnvDuration("BENCHMARK_PAUSE", time.Second),
		ProviderTimeout: getEnvDuration("PROVIDER_TIMEOUT", 60*time.Second),
		LogLevel:        parseLevel(getEnv("LOG_LEVEL", "info")),
	}
}

// ConfiguredProviders lists the providers that have an API key.
func (c *Config) ConfiguredProviders() []string {
	var names []string
	if c.GroqAPIKey != "" {
		names = append(names, "groq")
	}
	if c.GeminiAPIKey != "" {
		names = append(names, "gemini")
	}
	return names
}

// ArchiveEnabled reports whether uploads are persisted to Qdrant.
func (c *Config) ArchiveEnabled() bool {
	return c.QdrantHost != ""
}

// ValidationErrors collects every configuration problem found.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, err := range v {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	return v
}

var (
	ErrNoProvider      = errors.New("no provider api key set (GROQ_API_KEY or GEMINI_API_KEY)")
	ErrDefaultProvider = errors.New("default provider is not configured")
)

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	configured := c.ConfiguredProviders()
	if len(configured) == 0 {
		errs = append(errs, ErrNoProvider)
	} else if !contains(configured, c.DefaultProvider) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrDefaultProvider, c.DefaultProvider))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	if c.BenchmarkPause < 0 {
		errs = append(errs, fmt.Errorf("BENCHMARK_PAUSE must not be negative: %s", c.BenchmarkPause))
	}
	if c.ProviderTimeout < 0 {
		errs = append(errs, fmt.Errorf("PROVIDER_TIMEOUT must not be negative: %s", c.ProviderTimeout))
	}
	if c.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("LLM_MAX_TOKENS must be positive: %d", c.MaxTokens))
	}
	if c.ArchiveEnabled() && (c.QdrantPort <= 0 || c.QdrantPort > 65535) {
		errs = append(errs, fmt.Errorf("QDRANT_PORT out of range: %d", c.QdrantPort))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// NewLogger builds the text logger used by the binaries.
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

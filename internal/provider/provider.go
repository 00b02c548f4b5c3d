// Package provider adapts external language-model backends to one interface.
package provider

import "context"

// Provider sends an assembled prompt to a language model.
type Provider interface {
	// Name is the identifier used to select the provider, e.g. "groq".
	Name() string
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// Usage reports token accounting for one generation.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// Generation is the text a provider produced plus its usage.
type Generation struct {
	Text  string
	Model string
	Usage Usage
}

// Options are the sampling settings shared by every adapter.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

func (o Options) withDefaults(model string) Options {
	if o.Model == "" {
		o.Model = model
	}
	if o.Temperature == 0 {
		o.Temperature = DefaultTemperature
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

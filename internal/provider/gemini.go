package provider

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	GeminiName  = "gemini"
	GeminiModel = "gemini-1.5-flash-latest"
)

// Gemini calls the Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	opts   Options
}

// NewGemini creates the Gemini adapter.
func NewGemini(ctx context.Context, apiKey string, opts Options) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", GeminiName, ErrMissingAPIKey)
	}

	return newGemini(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}, opts)
}

func newGemini(ctx context.Context, cc *genai.ClientConfig, opts Options) (*Gemini, error) {
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Gemini{client: client, opts: opts.withDefaults(GeminiModel)}, nil
}

func (g *Gemini) Name() string {
	return GeminiName
}

// Generate sends prompt as a single text part.
func (g *Gemini) Generate(ctx context.Context, prompt string) (*Generation, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.opts.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.opts.Temperature)),
		MaxOutputTokens: int32(g.opts.MaxTokens),
	})
	if err != nil {
		return nil, wrapGeminiError(err)
	}

	text := resp.Text()
	if text == "" && len(resp.Candidates) == 0 {
		return nil, &Error{Provider: GeminiName, Message: ErrEmptyResponse.Error(), Err: ErrEmptyResponse}
	}

	return &Generation{
		Text:  text,
		Model: g.opts.Model,
		Usage: usageFromGemini(resp.UsageMetadata),
	}, nil
}

func wrapGeminiError(err error) error {
	perr := &Error{Provider: GeminiName, Message: err.Error(), Err: err}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		perr.StatusCode = apiErr.Code
		if apiErr.Message != "" {
			perr.Message = apiErr.Message
		}
	}
	return perr
}

func usageFromGemini(md *genai.GenerateContentResponseUsageMetadata) Usage {
	if md == nil {
		return Usage{}
	}
	return Usage{
		PromptTokens:     int(md.PromptTokenCount),
		CompletionTokens: int(md.CandidatesTokenCount),
		TotalTokens:      int(md.TotalTokenCount),
	}
}

package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	GroqName    = "groq"
	GroqBaseURL = "https://api.groq.com/openai/v1"
	GroqModel   = "llama-3.1-8b-instant"
)

// OpenAICompatible talks to any backend exposing the OpenAI chat completions API.
type OpenAICompatible struct {
	name   string
	client openai.Client
	opts   Options
}

// NewOpenAICompatible creates an adapter named name. The SDK's own retries are
// disabled; a failed call surfaces as *Error.
func NewOpenAICompatible(name, apiKey, baseURL string, opts Options, extra ...option.RequestOption) (*OpenAICompatible, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingAPIKey)
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("%s: model not set", name)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	reqOpts = append(reqOpts, extra...)

	return &OpenAICompatible{
		name:   name,
		client: openai.NewClient(reqOpts...),
		opts:   opts.withDefaults(opts.Model),
	}, nil
}

// NewGroq creates the Groq adapter.
func NewGroq(apiKey, baseURL string, opts Options) (*OpenAICompatible, error) {
	if baseURL == "" {
		baseURL = GroqBaseURL
	}
	return NewOpenAICompatible(GroqName, apiKey, baseURL, opts.withDefaults(GroqModel))
}

func (p *OpenAICompatible) Name() string {
	return p.name
}

// Generate sends prompt as a single user message.
func (p *OpenAICompatible) Generate(ctx context.Context, prompt string) (*Generation, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model:       openai.ChatModel(p.opts.Model),
		Temperature: openai.Float(p.opts.Temperature),
		MaxTokens:   openai.Int(int64(p.opts.MaxTokens)),
	})
	if err != nil {
		return nil, p.wrapError(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Provider: p.name, Message: ErrEmptyResponse.Error(), Err: ErrEmptyResponse}
	}

	return &Generation{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: Usage{
			PromptTokens:     int(resp.Usage.PromptTokens),
			CompletionTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
		},
	}, nil
}

func (p *OpenAICompatible) wrapError(err error) error {
	perr := &Error{Provider: p.name, Message: err.Error(), Err: err}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		perr.StatusCode = apiErr.StatusCode
		if apiErr.Message != "" {
			perr.Message = apiErr.Message
		}
	}
	return perr
}

// Package chat answers user messages by running classification, retrieval, prompt
// assembly and one provider call.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bull/qubz-assistant/internal/prompt"
	"github.com/bull/qubz-assistant/internal/provider"
	"github.com/bull/qubz-assistant/internal/retrieval"
	"github.com/bull/qubz-assistant/internal/storage"
)

// Response is the answer returned to chat clients.
type Response struct {
	Response string         `json:"response"`
	Sources  []string       `json:"sources"`
	Provider string         `json:"provider"`
	Usage    provider.Usage `json:"usage"`
}

// Exchange is everything produced while answering one message.
type Exchange struct {
	Query          string
	Provider       string
	Classification retrieval.Classification
	Retrieval      retrieval.Result
	Prompt         string
	Generation     *provider.Generation // nil when the provider call failed
}

// Sources lists the identifiers of the documents placed in the prompt.
func (e *Exchange) Sources() []string {
	return e.Retrieval.Identifiers()
}

// Config holds service dependencies.
type Config struct {
	Store     *storage.Store
	Providers *provider.Registry
	Tables    *retrieval.Tables // nil uses the embedded tables
	Assembler *prompt.Assembler // nil uses the default template
	Timeout   time.Duration     // per provider call, 0 means none
	Logger    *slog.Logger
}

// Service is safe for concurrent use.
type Service struct {
	store      *storage.Store
	providers  *provider.Registry
	classifier *retrieval.Classifier
	engine     *retrieval.Engine
	assembler  *prompt.Assembler
	timeout    time.Duration
	logger     *slog.Logger
}

// NewService creates a chat service.
func NewService(cfg Config) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	assembler := cfg.Assembler
	if assembler == nil {
		assembler = prompt.NewAssembler()
	}

	return &Service{
		store:      cfg.Store,
		providers:  cfg.Providers,
		classifier: retrieval.NewClassifier(cfg.Tables),
		engine:     retrieval.NewEngine(cfg.Store, cfg.Tables),
		assembler:  assembler,
		timeout:    cfg.Timeout,
		logger:     logger,
	}
}

// HandleChat answers message with the default provider.
func (s *Service) HandleChat(ctx context.Context, message string) (*Response, error) {
	return s.HandleChatWith(ctx, "", message)
}

// HandleChatWith answers message with the named provider ("" selects the default).
func (s *Service) HandleChatWith(ctx context.Context, providerName, message string) (*Response, error) {
	ex, err := s.Ask(ctx, providerName, message)
	if err != nil {
		return nil, err
	}
	return &Response{
		Response: ex.Generation.Text,
		Sources:  ex.Sources(),
		Provider: ex.Provider,
		Usage:    ex.Generation.Usage,
	}, nil
}

// Ask runs the full pipeline. When the provider call fails the partial exchange is
// returned together with the error.
func (s *Service) Ask(ctx context.Context, providerName, message string) (*Exchange, error) {
	if strings.TrimSpace(message) == "" {
		return nil, &ValidationError{Field: "message", Err: ErrEmptyMessage}
	}

	p, err := s.providers.Get(providerName)
	if err != nil {
		return nil, err
	}

	ex := s.Prepare(message)
	ex.Provider = p.Name()

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	gen, err := p.Generate(callCtx, ex.Prompt)
	if err != nil {
		s.logger.Error("provider call failed",
			"provider", p.Name(),
			"duration", time.Since(start),
			"error", err)
		return ex, fmt.Errorf("generate: %w", err)
	}
	ex.Generation = gen

	s.logger.Info("chat answered",
		"provider", p.Name(),
		"duration", time.Since(start),
		"total_tokens", gen.Usage.TotalTokens)
	return ex, nil
}

// Prepare classifies message, retrieves documents and assembles the prompt without
// calling a provider.
func (s *Service) Prepare(message string) *Exchange {
	class, result := s.Search(message)
	return &Exchange{
		Query:          message,
		Classification: class,
		Retrieval:      result,
		Prompt:         s.assembler.Assemble(message, result, class),
	}
}

// Search classifies query and retrieves its documents.
func (s *Service) Search(query string) (retrieval.Classification, retrieval.Result) {
	class := s.classifier.Classify(query)
	result := s.engine.Retrieve(query, class)

	s.logger.Info("searching documents",
		"query_length", len(query),
		"classification", class.String(),
		"found", len(result.Documents()),
		"documents", result.Identifiers())

	if class.Kind == retrieval.InDomain && len(result.Entries) == 0 && s.store.Len() == 0 {
		s.logger.Warn("in-domain query answered with refusal because the document store is empty")
	}
	return class, result
}

package chat

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bull/qubz-assistant/internal/prompt"
	"github.com/bull/qubz-assistant/internal/provider"
	"github.com/bull/qubz-assistant/internal/retrieval"
	"github.com/bull/qubz-assistant/internal/storage"
)

type fakeProvider struct {
	name string
	err  error
	wait time.Duration

	mu      sync.Mutex
	prompts []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(ctx context.Context, p string) (*provider.Generation, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	f.mu.Unlock()

	if f.wait > 0 {
		select {
		case <-time.After(f.wait):
		case <-ctx.Done():
			return nil, &provider.Error{Provider: f.name, Message: ctx.Err().Error(), Err: ctx.Err()}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &provider.Generation{
		Text:  "antwoord van " + f.name,
		Usage: provider.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}, nil
}

func (f *fakeProvider) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func newTestService(store *storage.Store, providers ...provider.Provider) *Service {
	return NewService(Config{
		Store:     store,
		Providers: provider.NewRegistry("gemini", providers...),
		Logger:    slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})
}

func TestHandleChat_UsesDefaultProviderAndReturnsSources(t *testing.T) {
	store := storage.NewStore()
	store.AddDocument("Layout/relaties.txt", "Menu Relaties > Nieuw > Opslaan.", storage.TypeText)
	gemini := &fakeProvider{name: "gemini"}
	groq := &fakeProvider{name: "groq"}
	svc := newTestService(store, gemini, groq)

	resp, err := svc.HandleChat(context.Background(), "Hoe maak ik een nieuwe klant aan?")
	require.NoError(t, err)

	assert.Equal(t, "antwoord van gemini", resp.Response)
	assert.Equal(t, []string{"Layout/relaties.txt"}, resp.Sources)
	assert.Equal(t, "gemini", resp.Provider)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	sent := gemini.lastPrompt()
	assert.Contains(t, sent, "Layout/relaties.txt: Menu Relaties > Nieuw > Opslaan.")
	assert.Empty(t, groq.prompts)
}

func TestHandleChatWith_SelectsProvider(t *testing.T) {
	groq := &fakeProvider{name: "groq"}
	svc := newTestService(storage.NewStore(), &fakeProvider{name: "gemini"}, groq)

	resp, err := svc.HandleChatWith(context.Background(), "groq", "hallo")
	require.NoError(t, err)

	assert.Equal(t, "groq", resp.Provider)
	assert.Empty(t, resp.Sources)
	assert.Contains(t, groq.lastPrompt(), prompt.DefaultTemplate().Greeting)
}

func TestHandleChat_EmptyMessage(t *testing.T) {
	gemini := &fakeProvider{name: "gemini"}
	svc := newTestService(storage.NewStore(), gemini)

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.HandleChat(context.Background(), msg)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "%q", msg)
		assert.Equal(t, "message", verr.Field)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Empty(t, gemini.prompts)
}

func TestHandleChat_UnknownProvider(t *testing.T) {
	svc := newTestService(storage.NewStore(), &fakeProvider{name: "gemini"})

	_, err := svc.HandleChatWith(context.Background(), "openai", "hallo")
	assert.ErrorIs(t, err, provider.ErrUnknownProvider)
}

func TestAsk_ProviderErrorKeepsPartialExchange(t *testing.T) {
	store := storage.NewStore()
	store.AddDocument("Handleiding/contracten.txt", "Contracten worden per jaar verlengd.", storage.TypeText)
	upstream := &provider.Error{Provider: "groq", StatusCode: 429, Message: "rate limited"}
	svc := newTestService(store, &fakeProvider{name: "groq", err: upstream})

	ex, err := svc.Ask(context.Background(), "groq", "Hoe lang loopt een contract?")
	require.Error(t, err)

	var perr *provider.Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 429, perr.StatusCode)

	require.NotNil(t, ex)
	assert.Nil(t, ex.Generation)
	assert.Equal(t, "groq", ex.Provider)
	assert.Equal(t, []string{"Handleiding/contracten.txt"}, ex.Sources())
}

func TestAsk_TimeoutBoundsProviderCall(t *testing.T) {
	slow := &fakeProvider{name: "gemini", wait: time.Second}
	svc := NewService(Config{
		Store:     storage.NewStore(),
		Providers: provider.NewRegistry("gemini", slow),
		Timeout:   20 * time.Millisecond,
		Logger:    slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})

	start := time.Now()
	_, err := svc.Ask(context.Background(), "", "hallo")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestPrepare_OutOfDomainRefusal(t *testing.T) {
	store := storage.NewStore()
	store.AddDocument("Layout/relaties.txt", "Relaties.", storage.TypeText)
	svc := newTestService(store, &fakeProvider{name: "gemini"})

	ex := svc.Prepare("Wat is de hoofdstad van Nederland?")

	assert.Equal(t, retrieval.OutOfDomain, ex.Classification.Kind)
	assert.Empty(t, ex.Sources())
	assert.True(t, strings.HasSuffix(ex.Prompt, prompt.DefaultTemplate().Refusal))
}

func TestSearch_WarnsOnEmptyStore(t *testing.T) {
	var logs bytes.Buffer
	svc := NewService(Config{
		Store:     storage.NewStore(),
		Providers: provider.NewRegistry("gemini"),
		Logger:    slog.New(slog.NewTextHandler(&logs, nil)),
	})

	class, result := svc.Search("Waar vind ik mijn facturen?")

	assert.Equal(t, retrieval.InDomain, class.Kind)
	assert.Empty(t, result.Entries)
	assert.Contains(t, logs.String(), "document store is empty")
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "message", Err: ErrEmptyMessage}
	assert.Equal(t, "invalid message: message is required", err.Error())
}

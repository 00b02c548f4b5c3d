package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ name string }

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Generate(context.Context, string) (*Generation, error) {
	return &Generation{Text: s.name}, nil
}

func TestRegistry(t *testing.T) {
	r := NewRegistry("Gemini", stubProvider{"groq"}, stubProvider{"gemini"})

	p, err := r.Get("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	p, err = r.Get(" GROQ ")
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Name())

	_, err = r.Get("openai")
	assert.ErrorIs(t, err, ErrUnknownProvider)

	assert.Equal(t, []string{"gemini", "groq"}, r.Names())
	assert.Equal(t, "gemini", r.Default())
}

func TestRegistry_MissingDefault(t *testing.T) {
	r := NewRegistry("gemini", stubProvider{"groq"})

	_, err := r.Get("")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &Error{Provider: "groq", Message: "connection refused", Err: cause}
	assert.Equal(t, "groq: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	withStatus := &Error{Provider: "gemini", StatusCode: 429, Message: "quota exceeded"}
	assert.Equal(t, "gemini: upstream status 429: quota exceeded", withStatus.Error())
}

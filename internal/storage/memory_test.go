package storage

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddPreservesOrder(t *testing.T) {
	store := NewStore()
	store.AddDocument("a.txt", "first", TypeText)
	store.AddDocument("Layout/b.txt", "second", TypeText)
	store.Add(Document{Identifier: "c.pdf", Content: "third", Type: TypePDF})

	docs := store.All()
	require.Len(t, docs, 3)
	assert.Equal(t, "a.txt", docs[0].Identifier)
	assert.Equal(t, "Layout/b.txt", docs[1].Identifier)
	assert.Equal(t, "c.pdf", docs[2].Identifier)
	assert.Equal(t, TypePDF, docs[2].Type)
	assert.False(t, docs[0].AddedAt.IsZero())
	assert.Equal(t, 3, store.Len())
}

func TestStore_AllReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.AddDocument("a.txt", "first", TypeText)

	docs := store.All()
	docs[0].Content = "mutated"

	again := store.All()
	assert.Equal(t, "first", again[0].Content)
}

func TestStore_GetLastAddedWins(t *testing.T) {
	store := NewStore()
	store.AddDocument("dup.txt", "old", TypeText)
	store.AddDocument("other.txt", "x", TypeText)
	store.AddDocument("dup.txt", "new", TypeText)

	doc, err := store.Get("dup.txt")
	require.NoError(t, err)
	assert.Equal(t, "new", doc.Content)
	assert.Equal(t, 3, store.Len())

	_, err = store.Get("missing.txt")
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestStore_Summaries(t *testing.T) {
	store := NewStore()
	store.AddDocument("long.txt", strings.Repeat("x", 250), TypeText)
	store.AddDocument("short.txt", "kort", TypeText)

	summaries := store.Summaries()
	require.Len(t, summaries, 2)
	assert.Len(t, summaries[0].Preview, PreviewLength)
	assert.Equal(t, "kort", summaries[1].Preview)
	assert.Equal(t, TypeText, summaries[1].Type)
}

func TestStore_ConcurrentAddAndRead(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.AddDocument("doc.txt", "content", TypeText)
		}()
		go func() {
			defer wg.Done()
			_ = store.All()
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, store.Len())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "abc", 5, "abc"},
		{"exact limit", "abcde", 5, "abcde"},
		{"longer than limit", "abcdefgh", 5, "abcde"},
		{"multibyte characters", "ëëëëë", 3, "ëëë"},
		{"zero limit", "abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

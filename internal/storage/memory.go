package storage

import (
	"sync"
	"time"
)

// Store is the append-only in-memory document store.
// It is created by the composition root and handed to every component that reads documents.
type Store struct {
	mu   sync.RWMutex
	docs []Document
	now  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Add appends a document. Duplicate identifiers are not rejected.
func (s *Store) Add(doc Document) {
	if doc.AddedAt.IsZero() {
		doc.AddedAt = s.now()
	}
	s.mu.Lock()
	s.docs = append(s.docs, doc)
	s.mu.Unlock()
}

// AddDocument appends a document built from its parts.
func (s *Store) AddDocument(identifier, content string, typ ContentType) {
	s.Add(Document{Identifier: identifier, Content: content, Type: typ})
}

// All returns a snapshot of the documents in insertion order.
func (s *Store) All() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

// Get returns the most recently added document with the given identifier.
func (s *Store) Get(identifier string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.docs) - 1; i >= 0; i-- {
		if s.docs[i].Identifier == identifier {
			return s.docs[i], nil
		}
	}
	return Document{}, ErrDocumentNotFound
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// Summaries lists every document with a short preview.
func (s *Store) Summaries() []Summary {
	docs := s.All()
	out := make([]Summary, 0, len(docs))
	for _, d := range docs {
		out = append(out, Summary{
			Identifier: d.Identifier,
			Type:       d.Type,
			Preview:    Truncate(d.Content, PreviewLength),
			Sections:   d.Sections,
		})
	}
	return out
}

// Truncate returns at most n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

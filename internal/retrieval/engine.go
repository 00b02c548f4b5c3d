package retrieval

import (
	"strings"

	"github.com/bull/qubz-assistant/internal/storage"
)

// Entry is one retrieved document. Greeting marks the content-less sentinel.
type Entry struct {
	Identifier string
	Content    string
	Type       storage.ContentType
	Full       bool // Content is the whole document, not an excerpt
	Greeting   bool
}

// Result is an ordered retrieval, most relevant first.
type Result struct {
	Entries []Entry
}

// IsGreeting reports whether r is the greeting sentinel.
func (r Result) IsGreeting() bool {
	return len(r.Entries) == 1 && r.Entries[0].Greeting
}

// Documents returns the real document entries, excluding the sentinel.
func (r Result) Documents() []Entry {
	docs := make([]Entry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !e.Greeting {
			docs = append(docs, e)
		}
	}
	return docs
}

// Identifiers lists the identifiers of the real document entries.
func (r Result) Identifiers() []string {
	ids := make([]string, 0, len(r.Entries))
	for _, e := range r.Documents() {
		ids = append(ids, e.Identifier)
	}
	return ids
}

// DocumentSource enumerates stored documents in insertion order.
type DocumentSource interface {
	All() []storage.Document
}

// Engine selects documents for classified queries.
type Engine struct {
	docs   DocumentSource
	tables *Tables
}

// NewEngine creates an engine reading from docs (nil tables means defaults).
func NewEngine(docs DocumentSource, tables *Tables) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Engine{docs: docs, tables: tables}
}

// Retrieve returns at most MaxResults entries for query.
//
// Greetings yield the sentinel and out-of-domain queries nothing. Otherwise documents
// containing any expanded term are excerpted in store order. Navigation queries then put
// the first priority-table document in front and append the remaining navigation
// reference documents; both in full.
func (e *Engine) Retrieve(query string, c Classification) Result {
	switch c.Kind {
	case Greeting:
		return Result{Entries: []Entry{{Greeting: true}}}
	case OutOfDomain:
		return Result{}
	}

	q := strings.ToLower(query)
	docs := latestVersions(e.docs.All())
	terms := e.ExpandTerms(query)

	entries := make([]Entry, 0, len(docs))
	for _, d := range docs {
		if containsAny(strings.ToLower(d.Content), terms) {
			entries = append(entries, Entry{
				Identifier: d.Identifier,
				Content:    storage.Truncate(d.Content, e.tables.ExcerptLength),
				Type:       d.Type,
			})
		}
	}

	if c.Navigation {
		if doc, ok := e.priorityDocument(q, docs); ok {
			entries = prepend(entries, fullEntry(doc))
		}
		for _, d := range docs {
			if strings.HasPrefix(d.Identifier, e.tables.NavigationPrefix) && !hasIdentifier(entries, d.Identifier) {
				entries = append(entries, fullEntry(d))
			}
		}
	}

	if len(entries) > e.tables.MaxResults {
		entries = entries[:e.tables.MaxResults]
	}
	return Result{Entries: entries}
}

// ExpandTerms returns the lower-cased query followed by the key and variants of every
// synonym entry the query mentions.
func (e *Engine) ExpandTerms(query string) []string {
	q := strings.ToLower(query)
	terms := []string{q}
	seen := map[string]bool{q: true}

	add := func(term string) {
		if !seen[term] {
			seen[term] = true
			terms = append(terms, term)
		}
	}

	for _, syn := range e.tables.Synonyms {
		if !strings.Contains(q, syn.Key) && !containsAny(q, syn.Variants) {
			continue
		}
		add(syn.Key)
		for _, v := range syn.Variants {
			add(v)
		}
	}
	return terms
}

// priorityDocument finds the document named by the first rule whose keyword is in q.
func (e *Engine) priorityDocument(q string, docs []storage.Document) (storage.Document, bool) {
	for _, rule := range e.tables.Priority {
		if !strings.Contains(q, rule.Keyword) {
			continue
		}
		for _, d := range docs {
			if d.Identifier == rule.Document {
				return d, true
			}
		}
		return storage.Document{}, false
	}
	return storage.Document{}, false
}

// latestVersions keeps one document per identifier, the last added, at its own position.
func latestVersions(docs []storage.Document) []storage.Document {
	last := make(map[string]int, len(docs))
	for i, d := range docs {
		last[d.Identifier] = i
	}
	out := make([]storage.Document, 0, len(last))
	for i, d := range docs {
		if last[d.Identifier] == i {
			out = append(out, d)
		}
	}
	return out
}

func fullEntry(d storage.Document) Entry {
	return Entry{Identifier: d.Identifier, Content: d.Content, Type: d.Type, Full: true}
}

// prepend puts e first, dropping any other entry with the same identifier.
func prepend(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, e)
	for _, existing := range entries {
		if existing.Identifier != e.Identifier {
			out = append(out, existing)
		}
	}
	return out
}

func hasIdentifier(entries []Entry, id string) bool {
	for _, e := range entries {
		if e.Identifier == id {
			return true
		}
	}
	return false
}

// Package mcp exposes the assistant over the Model Context Protocol.
package mcp

import (
	"github.com/bull/qubz-assistant/internal/provider"
	"github.com/bull/qubz-assistant/internal/storage"
)

// AskInput defines the input parameters for the ask_assistant tool.
type AskInput struct {
	Message  string `json:"message" jsonschema:"The question for the 21Qubz assistant, in Dutch or English"`
	Provider string `json:"provider,omitempty" jsonschema:"Language model provider to use (groq or gemini). Defaults to the server default"`
}

// AskOutput is the assistant's answer.
type AskOutput struct {
	Response string         `json:"response"`
	Sources  []string       `json:"sources"`
	Provider string         `json:"provider"`
	Usage    provider.Usage `json:"usage"`
}

// SearchInput defines the input parameters for the search_documents tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"The question or keywords to find reference documents for"`
}

// SearchOutput contains the documents the assistant would use for a query.
type SearchOutput struct {
	Classification string         `json:"classification"`
	Results        []SearchResult `json:"results"`
	// Message explains an empty result.
	Message string `json:"message,omitempty"`
}

// SearchResult is one retrieved document.
type SearchResult struct {
	Identifier string              `json:"identifier"`
	Type       storage.ContentType `json:"type"`
	Content    string              `json:"content"`
	// Full is false when Content is an excerpt.
	Full bool `json:"full"`
}

// ListInput takes no parameters.
type ListInput struct{}

// ListOutput lists every stored document.
type ListOutput struct {
	Documents []storage.Summary `json:"documents"`
	Count     int               `json:"count"`
}

// FetchInput defines the input parameters for the fetch_document tool.
type FetchInput struct {
	Identifier string `json:"identifier" jsonschema:"The document identifier, e.g. Layout/relaties.txt"`
}

// FetchOutput contains one document.
type FetchOutput struct {
	Identifier string              `json:"identifier"`
	Type       storage.ContentType `json:"type,omitempty"`
	Content    string              `json:"content"`
	Sections   []string            `json:"sections,omitempty"`
	Found      bool                `json:"found"`
}

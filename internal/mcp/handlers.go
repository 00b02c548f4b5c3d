package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bull/qubz-assistant/internal/chat"
	"github.com/bull/qubz-assistant/internal/retrieval"
	"github.com/bull/qubz-assistant/internal/storage"
)

// makeAskHandler creates the ask_assistant tool handler.
func makeAskHandler(svc *chat.Service) func(
	context.Context, *mcp.CallToolRequest, AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (
		*mcp.CallToolResult, AskOutput, error,
	) {
		resp, err := svc.HandleChatWith(ctx, input.Provider, input.Message)
		if err != nil {
			return nil, AskOutput{}, fmt.Errorf("ask failed: %w", err)
		}
		return nil, AskOutput{
			Response: resp.Response,
			Sources:  resp.Sources,
			Provider: resp.Provider,
			Usage:    resp.Usage,
		}, nil
	}
}

// makeSearchHandler creates the search_documents tool handler.
// It runs classification and retrieval only.
func makeSearchHandler(svc *chat.Service) func(
	context.Context, *mcp.CallToolRequest, SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (
		*mcp.CallToolResult, SearchOutput, error,
	) {
		class, result := svc.Search(input.Query)

		out := SearchOutput{
			Classification: class.String(),
			Results:        []SearchResult{},
		}
		for _, e := range result.Documents() {
			out.Results = append(out.Results, SearchResult{
				Identifier: e.Identifier,
				Type:       e.Type,
				Content:    e.Content,
				Full:       e.Full,
			})
		}

		switch {
		case class.Kind == retrieval.Greeting:
			out.Message = "Greeting detected, no documents are used."
		case class.Kind == retrieval.OutOfDomain:
			out.Message = "Query is outside the 21Qubz/21south domain."
		case len(out.Results) == 0:
			out.Message = "No matching documents found. Try other terms."
		}
		return nil, out, nil
	}
}

// makeListHandler creates the list_documents tool handler.
func makeListHandler(store *storage.Store) func(
	context.Context, *mcp.CallToolRequest, ListInput,
) (*mcp.CallToolResult, ListOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (
		*mcp.CallToolResult, ListOutput, error,
	) {
		docs := store.Summaries()
		return nil, ListOutput{
			Documents: docs,
			Count:     len(docs),
		}, nil
	}
}

// makeFetchHandler creates the fetch_document tool handler.
// A missing document is reported with Found=false rather than an error.
func makeFetchHandler(store *storage.Store) func(
	context.Context, *mcp.CallToolRequest, FetchInput,
) (*mcp.CallToolResult, FetchOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input FetchInput) (
		*mcp.CallToolResult, FetchOutput, error,
	) {
		doc, err := store.Get(input.Identifier)
		if err != nil {
			if errors.Is(err, storage.ErrDocumentNotFound) {
				return nil, FetchOutput{Identifier: input.Identifier, Found: false}, nil
			}
			return nil, FetchOutput{}, fmt.Errorf("failed to fetch document: %w", err)
		}

		return nil, FetchOutput{
			Identifier: doc.Identifier,
			Type:       doc.Type,
			Content:    doc.Content,
			Sections:   doc.Sections,
			Found:      true,
		}, nil
	}
}

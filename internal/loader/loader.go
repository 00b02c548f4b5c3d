// Package loader reads reference documents from disk and uploads into storage documents.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bull/qubz-assistant/internal/markdown"
	"github.com/bull/qubz-assistant/internal/storage"
)

// LoadResult contains statistics about a directory load.
type LoadResult struct {
	Documents []storage.Document
	Failed    []*LoadError
	Skipped   int // Files with an unsupported extension
	Duration  time.Duration
}

// Loader parses documents by file extension.
type Loader struct {
	markdown *markdown.Extractor
	logger   *slog.Logger
}

// New creates a Loader.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		markdown: markdown.NewExtractor(),
		logger:   logger,
	}
}

// TypeFor maps a file name to its content type.
func TypeFor(name string) (storage.ContentType, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return storage.TypeText, true
	case ".pdf":
		return storage.TypePDF, true
	case ".docx":
		return storage.TypeDocx, true
	case ".md", ".markdown":
		return storage.TypeMarkdown, true
	default:
		return "", false
	}
}

// Supported reports whether name has a parser.
func Supported(name string) bool {
	_, ok := TypeFor(name)
	return ok
}

// LoadDir walks root recursively and parses every supported file.
// Identifiers are slash-separated paths relative to root. A missing root yields an empty result.
// Unreadable or unparseable files are logged and skipped.
func (l *Loader) LoadDir(ctx context.Context, root string) (*LoadResult, error) {
	start := time.Now()
	result := &LoadResult{}

	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			l.logger.Warn("Documents directory not found", "dir", root)
			return result, nil
		}
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			l.logger.Warn("Failed to read path", "path", path, "error", err)
			result.Failed = append(result.Failed, &LoadError{Path: path, Err: err})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !Supported(path) {
			result.Skipped++
			return nil
		}

		identifier, err := Identifier(root, path)
		if err != nil {
			result.Failed = append(result.Failed, &LoadError{Path: path, Err: err})
			return nil
		}

		doc, err := l.ParseFile(path, identifier)
		if err != nil {
			l.logger.Warn("Failed to load document", "path", path, "error", err)
			result.Failed = append(result.Failed, &LoadError{Path: path, Err: err})
			return nil
		}
		l.logger.Debug("Loaded document", "identifier", identifier, "type", doc.Type, "size", len(doc.Content))
		result.Documents = append(result.Documents, *doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	result.Duration = time.Since(start)
	l.logger.Info("Loaded documents",
		"loaded", len(result.Documents),
		"failed", len(result.Failed),
		"skipped", result.Skipped,
		"duration", result.Duration,
	)
	return result, nil
}

// Identifier returns path relative to root with forward slashes.
func Identifier(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// ParseFile reads and parses a single file.
func (l *Loader) ParseFile(path, identifier string) (*storage.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Parse(identifier, data)
}

// Parse extracts text from data according to the extension of name.
func (l *Loader) Parse(name string, data []byte) (*storage.Document, error) {
	typ, ok := TypeFor(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(name))
	}

	doc := &storage.Document{Identifier: name, Type: typ}
	switch typ {
	case storage.TypeText:
		doc.Content = string(data)
	case storage.TypePDF:
		content, err := extractPDF(data)
		if err != nil {
			return nil, fmt.Errorf("%w: pdf: %w", ErrMalformedDocument, err)
		}
		doc.Content = content
	case storage.TypeDocx:
		content, err := extractDocx(data)
		if err != nil {
			return nil, fmt.Errorf("%w: docx: %w", ErrMalformedDocument, err)
		}
		doc.Content = content
	case storage.TypeMarkdown:
		extracted, err := l.markdown.Extract(data)
		if err != nil {
			return nil, fmt.Errorf("%w: markdown: %w", ErrMalformedDocument, err)
		}
		doc.Content = extracted.Text
		doc.Sections = extracted.Sections
	}
	return doc, nil
}

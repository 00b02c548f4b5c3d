// Package markdown turns markdown reference documents into searchable plain text.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Extracted is the result of flattening a markdown document.
type Extracted struct {
	Text     string   // Plain text, one block per line
	Sections []string // Heading outline: "Relaties", "Relaties > Nieuwe klant"
}

// Extractor flattens markdown with a goldmark parser.
type Extractor struct {
	parser goldmark.Markdown
}

// NewExtractor creates a new extractor configured with goldmark parser.
func NewExtractor() *Extractor {
	md := goldmark.New(
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Extractor{parser: md}
}

// Extract parses source and returns its plain text and H1/H2 outline.
// Markup is dropped so substring search sees the words a reader sees.
func (e *Extractor) Extract(source []byte) (*Extracted, error) {
	doc := e.parser.Parser().Parse(text.NewReader(source))

	tree, err := toc.Inspect(doc, source,
		toc.MinDepth(1),
		toc.MaxDepth(2),
		toc.Compact(true),
	)
	if err != nil {
		return nil, fmt.Errorf("inspect TOC: %w", err)
	}

	var sections []string
	collectSections(tree.Items, nil, &sections)

	return &Extracted{
		Text:     flatten(doc, source),
		Sections: sections,
	}, nil
}

// collectSections walks TOC items depth-first, recording each heading's path.
func collectSections(items toc.Items, ancestors []string, out *[]string) {
	for _, item := range items {
		path := append(append([]string(nil), ancestors...), string(item.Title))
		if len(item.Title) > 0 {
			*out = append(*out, strings.Join(path, " > "))
		}
		if len(item.Items) > 0 {
			collectSections(item.Items, path, out)
		}
	}
}

// flatten writes the text content of every node, one block per line.
func flatten(doc ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				endLine(&buf)
			}
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			buf.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(node.Value)
		case *ast.AutoLink:
			buf.Write(node.Label(source))
		case *ast.ListItem:
			buf.WriteString("- ")
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				buf.Write(seg.Value(source))
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(buf.String())
}

func endLine(buf *bytes.Buffer) {
	if buf.Len() > 0 && buf.Bytes()[buf.Len()-1] != '\n' {
		buf.WriteByte('\n')
	}
}

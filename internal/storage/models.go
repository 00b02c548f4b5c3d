package storage

import "time"

// ContentType tags how a document's text was obtained.
type ContentType string

const (
	TypeText     ContentType = "text"
	TypePDF      ContentType = "pdf"
	TypeDocx     ContentType = "docx"
	TypeMarkdown ContentType = "markdown"
)

// Document is a reference text held by the Store.
// Documents are immutable once added.
type Document struct {
	Identifier string      // Path-like name: "Layout/relaties.txt"
	Content    string      // Extracted plain text
	Type       ContentType // How Content was extracted
	Sections   []string    // Heading outline, markdown documents only
	AddedAt    time.Time
}

// Summary is the listing view of a document.
type Summary struct {
	Identifier string      `json:"filename"`
	Type       ContentType `json:"type"`
	Preview    string      `json:"preview"`
	Sections   []string    `json:"sections,omitempty"`
}

// PreviewLength is the number of characters shown in listings.
const PreviewLength = 100

// CollectionName is the Qdrant collection used by the archive.
const CollectionName = "qubz_documents"

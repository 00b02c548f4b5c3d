package storage

import "errors"

var (
	ErrArchiveUnreachable = errors.New("qdrant archive unreachable")
	ErrDocumentNotFound   = errors.New("document not found")
)

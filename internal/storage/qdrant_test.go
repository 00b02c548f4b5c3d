//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestArchive connects to a local Qdrant and ensures the collection exists.
// Skips the test if Qdrant is not running.
func setupTestArchive(t *testing.T) *QdrantArchive {
	archive, err := NewQdrantArchive("localhost", 6334)
	if err != nil {
		t.Skipf("Qdrant not available: %v", err)
	}

	err = archive.EnsureCollection(context.Background())
	require.NoError(t, err, "Failed to ensure collection")

	return archive
}

func TestArchiveRoundTrip(t *testing.T) {
	archive := setupTestArchive(t)
	defer archive.Close()

	ctx := context.Background()
	identifier := "test/" + uuid.New().String() + ".txt"

	doc := Document{
		Identifier: identifier,
		Content:    "Klanten worden aangemaakt via Relaties > Nieuw.",
		Type:       TypeText,
		AddedAt:    time.Now().UTC(),
	}
	require.NoError(t, archive.Archive(ctx, doc))

	docs, err := archive.LoadAll(ctx)
	require.NoError(t, err)

	var found *Document
	for i := range docs {
		if docs[i].Identifier == identifier {
			found = &docs[i]
		}
	}
	require.NotNil(t, found, "archived document not returned by LoadAll")
	assert.Equal(t, doc.Content, found.Content)
	assert.Equal(t, doc.Type, found.Type)
}

func TestArchiveOverwritesSameIdentifier(t *testing.T) {
	archive := setupTestArchive(t)
	defer archive.Close()

	ctx := context.Background()
	identifier := "test/" + uuid.New().String() + ".txt"

	before, err := archive.Count(ctx)
	require.NoError(t, err)

	require.NoError(t, archive.Archive(ctx, Document{Identifier: identifier, Content: "v1", Type: TypeText}))
	require.NoError(t, archive.Archive(ctx, Document{Identifier: identifier, Content: "v2", Type: TypeText}))

	after, err := archive.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
}

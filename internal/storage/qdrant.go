package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// QdrantArchive persists uploaded documents in Qdrant so they survive restarts.
// Points carry the document as payload only; the store stays the source of truth for retrieval.
type QdrantArchive struct {
	client *qdrant.Client
	host   string
	port   int
}

// NewQdrantArchive creates a Qdrant client with health validation.
// It retries the health check with backoff and fails fast if Qdrant stays unreachable.
func NewQdrantArchive(host string, port int) (*QdrantArchive, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	archive := &QdrantArchive{
		client: client,
		host:   host,
		port:   port,
	}

	if err := archive.healthCheckWithRetry(context.Background()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrArchiveUnreachable, err)
	}

	return archive, nil
}

// healthCheckWithRetry performs health check with exponential backoff.
// Initial interval 500ms, max interval 10s, max elapsed 30s.
func (a *QdrantArchive) healthCheckWithRetry(ctx context.Context) error {
	return backoff.Retry(func() error {
		return a.Health(ctx)
	}, newBackoff(ctx))
}

func newBackoff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 30 * time.Second
	return backoff.WithContext(b, ctx)
}

// Health performs a single health check against Qdrant.
func (a *QdrantArchive) Health(ctx context.Context) error {
	result, err := a.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if result == nil || result.Title == "" {
		return fmt.Errorf("health check returned invalid response")
	}
	return nil
}

// EnsureCollection creates the archive collection and its payload indexes if missing.
// Idempotent.
func (a *QdrantArchive) EnsureCollection(ctx context.Context) error {
	collections, err := a.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	for _, name := range collections {
		if name == CollectionName {
			return nil
		}
	}

	err = a.client.CreateCollection(ctx, archiveCollection())
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	for _, field := range []string{"identifier", "type"} {
		_, err := a.client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: CollectionName,
			FieldName:      field,
			FieldType:      qdrant.FieldType_FieldTypeKeyword.Enum(),
		})
		if err != nil {
			return fmt.Errorf("failed to create index for field %s: %w", field, err)
		}
	}

	return nil
}

// archiveCollection declares a payload-only collection; documents are never embedded.
func archiveCollection() *qdrant.CreateCollection {
	return &qdrant.CreateCollection{CollectionName: CollectionName}
}

// Archive upserts a document. Archiving the same identifier twice overwrites the earlier point.
func (a *QdrantArchive) Archive(ctx context.Context, doc Document) error {
	point := archivePoint(doc)

	return backoff.Retry(func() error {
		_, err := a.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: CollectionName,
			Points:         []*qdrant.PointStruct{point},
		})
		return err
	}, newBackoff(ctx))
}

// LoadAll returns every archived document ordered by the time it was added.
func (a *QdrantArchive) LoadAll(ctx context.Context) ([]Document, error) {
	var docs []Document
	var offset *qdrant.PointId
	batchSize := uint32(100)

	for {
		results, err := a.client.Scroll(ctx, &qdrant.ScrollPoints{
			CollectionName: CollectionName,
			Limit:          qdrant.PtrOf(batchSize),
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scroll documents: %w", err)
		}

		for _, result := range results {
			docs = append(docs, documentFromPayload(result.Payload))
		}

		if uint32(len(results)) < batchSize {
			break
		}
		offset = results[len(results)-1].Id
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].AddedAt.Before(docs[j].AddedAt)
	})
	return docs, nil
}

// Count returns the number of archived documents.
func (a *QdrantArchive) Count(ctx context.Context) (uint64, error) {
	info, err := a.client.GetCollectionInfo(ctx, CollectionName)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection: %w", err)
	}
	return info.GetPointsCount(), nil
}

// Close closes the Qdrant client connection.
func (a *QdrantArchive) Close() error {
	if a.client != nil {
		return a.client.Close()
	}
	return nil
}

func archivePoint(doc Document) *qdrant.PointStruct {
	return &qdrant.PointStruct{
		Id:      qdrant.NewIDUUID(PointID(doc.Identifier)),
		Vectors: qdrant.NewVectorsMap(map[string]*qdrant.Vector{}),
		Payload: qdrant.NewValueMap(documentPayload(doc)),
	}
}

// PointID derives a stable UUID from a document identifier.
func PointID(identifier string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("qubz-document:"+identifier)).String()
}

func documentPayload(doc Document) map[string]any {
	sections := make([]interface{}, len(doc.Sections))
	for i, s := range doc.Sections {
		sections[i] = s
	}
	return map[string]any{
		"identifier": doc.Identifier,
		"content":    doc.Content,
		"type":       string(doc.Type),
		"sections":   sections,
		"added_at":   doc.AddedAt.UTC().Format(time.RFC3339Nano),
	}
}

func documentFromPayload(payload map[string]*qdrant.Value) Document {
	addedAt, err := time.Parse(time.RFC3339Nano, payload["added_at"].GetStringValue())
	if err != nil {
		addedAt = time.Time{}
	}

	var sections []string
	if v, ok := payload["sections"]; ok && v.GetListValue() != nil {
		for _, s := range v.GetListValue().Values {
			sections = append(sections, s.GetStringValue())
		}
	}

	return Document{
		Identifier: payload["identifier"].GetStringValue(),
		Content:    payload["content"].GetStringValue(),
		Type:       ContentType(payload["type"].GetStringValue()),
		Sections:   sections,
		AddedAt:    addedAt,
	}
}

package repository

import (
	"context"

	"FinSight/internal/domain/models"
)

// VectorStore is the similarity index over rendered news documents.
type VectorStore interface {
	// QueryByText embeds text store-side and returns the nearest n
	// matches in ascending distance order.
	QueryByText(ctx context.Context, text string, n int) ([]models.RetrievedMatch, error)
	// QueryByVector searches with a caller-supplied embedding.
	QueryByVector(ctx context.Context, vector []float32, n int) ([]models.RetrievedMatch, error)
	Insert(ctx context.Context, docs []models.IndexedDocument) error
	// ReplaceAll atomically swaps the whole corpus.
	ReplaceAll(ctx context.Context, docs []models.IndexedDocument) error
	Count(ctx context.Context) (int, error)
	Health(ctx context.Context) error
	Close() error
}

// Embedder turns text into vectors.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// NewsStream is a live article feed.
type NewsStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Article, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// Publisher ships articles to the ingest bus.
type Publisher interface {
	Publish(ctx context.Context, a *models.Article) error
	PublishBatch(ctx context.Context, articles []*models.Article) error
	Close() error
}

// QueryLog records answered queries for offline analysis.
type QueryLog interface {
	Record(ctx context.Context, entry *models.QueryLogEntry) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics abstracts the service instrumentation.
type Metrics interface {
	RecordQuery(status string)
	RecordIngest(backend, source string)
	RecordError(kind string)
	RecordDocCount(n int)
	RecordIndexSize(n int)
	RecordLatency(op string, seconds float64)
}

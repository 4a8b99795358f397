package usecase

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	"FinSight/internal/services/ingest"
	"FinSight/pkg/logger"
	"FinSight/pkg/queue"
)

// RebuildJobType is the queue message type that triggers a corpus rebuild.
const RebuildJobType = "corpus.rebuild"

// RebuildPayload carries the full article set for a rebuild.
type RebuildPayload struct {
	Articles []models.Article `json:"articles"`
}

// CorpusBuilder rebuilds the vector index from scratch: every article is
// rendered to report form, embedded, and the store contents are swapped
// atomically. Runs as a background queue job so a rebuild never blocks
// the query path.
type CorpusBuilder struct {
	store    domrepo.VectorStore
	embedder domrepo.Embedder
	metrics  domrepo.Metrics
	logger   *logger.Logger
}

// NewCorpusBuilder creates a CorpusBuilder.
func NewCorpusBuilder(store domrepo.VectorStore, embedder domrepo.Embedder, metrics domrepo.Metrics, lgr *logger.Logger) *CorpusBuilder {
	return &CorpusBuilder{
		store:    store,
		embedder: embedder,
		metrics:  metrics,
		logger:   lgr,
	}
}

// Name implements queue.Job.
func (b *CorpusBuilder) Name() string { return "corpus-builder" }

// Type implements queue.Job.
func (b *CorpusBuilder) Type() string { return RebuildJobType }

// Handle implements queue.Job.
func (b *CorpusBuilder) Handle(ctx context.Context, payload interface{}) error {
	parsed, err := queue.ParsePayload[RebuildPayload](payload)
	if err != nil {
		return fmt.Errorf("parse rebuild payload: %w", err)
	}
	return b.Rebuild(ctx, parsed.Articles)
}

// Rebuild replaces the entire index with the given articles.
func (b *CorpusBuilder) Rebuild(ctx context.Context, articles []models.Article) error {
	start := time.Now()

	if len(articles) == 0 {
		return fmt.Errorf("rebuild requires at least one article")
	}

	docs := make([]models.IndexedDocument, len(articles))
	texts := make([]string, len(articles))
	for i := range articles {
		docs[i] = ingest.BuildIndexedDocument(&articles[i])
		texts[i] = docs[i].Content
	}

	vectors, err := b.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		b.metrics.RecordError("rebuild_embed")
		return fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embed corpus: got %d vectors for %d documents", len(vectors), len(docs))
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}

	if err := b.store.ReplaceAll(ctx, docs); err != nil {
		b.metrics.RecordError("rebuild_store")
		return fmt.Errorf("replace index: %w", err)
	}

	b.metrics.RecordIndexSize(len(docs))
	b.metrics.RecordLatency("corpus_rebuild", time.Since(start).Seconds())
	b.logger.Info("corpus rebuilt",
		logger.Int("documents", len(docs)),
		logger.Float64("elapsed_s", time.Since(start).Seconds()))
	return nil
}

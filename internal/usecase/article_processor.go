package usecase

import (
	"context"
	"fmt"
	"time"

	"FinSight/internal/domain/models"
	drepo "FinSight/internal/domain/repository"
	"FinSight/internal/services/ingest"
)

// ArticleProcessor routes incoming articles to the configured backend.
// With "kafka" the article goes onto the ingest topic for the consumer
// to embed and index; with "direct" it is embedded and written to the
// vector store in-process.
type ArticleProcessor struct {
	pub      drepo.Publisher
	store    drepo.VectorStore
	embedder drepo.Embedder
	metrics  drepo.Metrics
	backend  string
}

// NewArticleProcessor creates a new ArticleProcessor instance.
func NewArticleProcessor(
	pub drepo.Publisher,
	store drepo.VectorStore,
	embedder drepo.Embedder,
	metrics drepo.Metrics,
	backend string,
) *ArticleProcessor {
	return &ArticleProcessor{
		pub:      pub,
		store:    store,
		embedder: embedder,
		metrics:  metrics,
		backend:  backend,
	}
}

// Process routes a single article to the configured backend.
func (p *ArticleProcessor) Process(ctx context.Context, a *models.Article) error {
	if a == nil {
		return fmt.Errorf("article is nil")
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, a)
	case "direct":
		err = p.index(ctx, a)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process article: %w", err)
	}

	p.metrics.RecordIngest(p.backend, a.Source)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())
	return nil
}

// ProcessBatch routes multiple articles in a batch.
func (p *ArticleProcessor) ProcessBatch(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	start := time.Now()
	var err error

	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, articles)
	case "direct":
		err = p.indexBatch(ctx, articles)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, a := range articles {
		p.metrics.RecordIngest(p.backend, a.Source)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())
	return nil
}

func (p *ArticleProcessor) index(ctx context.Context, a *models.Article) error {
	doc := ingest.BuildIndexedDocument(a)
	vector, err := p.embedder.Embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("embed article: %w", err)
	}
	doc.Embedding = vector
	return p.store.Insert(ctx, []models.IndexedDocument{doc})
}

func (p *ArticleProcessor) indexBatch(ctx context.Context, articles []*models.Article) error {
	docs := make([]models.IndexedDocument, len(articles))
	contents := make([]string, len(articles))
	for i, a := range articles {
		docs[i] = ingest.BuildIndexedDocument(a)
		contents[i] = docs[i].Content
	}

	vectors, err := p.embedder.EmbedBatch(ctx, contents)
	if err != nil {
		return fmt.Errorf("embed batch: %w", err)
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}
	return p.store.Insert(ctx, docs)
}

// Close closes underlying resources if available.
func (p *ArticleProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
}

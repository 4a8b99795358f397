package usecase

import (
	"context"
	"encoding/json"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	"FinSight/internal/services/ingest"
	pkgkafka "FinSight/pkg/kafka"
)

// KafkaArticlesHandler consumes article messages from the ingest topic
// and writes rendered, embedded documents into the vector store.
type KafkaArticlesHandler struct {
	topic    string
	store    domrepo.VectorStore
	embedder domrepo.Embedder
	metrics  domrepo.Metrics
}

func NewKafkaArticlesHandler(topic string, store domrepo.VectorStore, embedder domrepo.Embedder, metrics domrepo.Metrics) *KafkaArticlesHandler {
	return &KafkaArticlesHandler{topic: topic, store: store, embedder: embedder, metrics: metrics}
}

func (h *KafkaArticlesHandler) Topic() string { return h.topic }

func (h *KafkaArticlesHandler) Handle(ctx context.Context, b []byte) error {
	var a models.Article
	if err := json.Unmarshal(b, &a); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	// E2E latency from article time to now (approx)
	h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(a.Timestamp).Seconds())

	doc := ingest.BuildIndexedDocument(&a)
	vector, err := h.embedder.Embed(ctx, doc.Content)
	if err != nil {
		h.metrics.RecordError("consumer_embed")
		return err
	}
	doc.Embedding = vector

	start := time.Now()
	err = h.store.Insert(ctx, []models.IndexedDocument{doc})
	h.metrics.RecordLatency("index_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordIngest("direct", a.Source)

	if n, err := h.store.Count(ctx); err == nil {
		h.metrics.RecordIndexSize(n)
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaArticlesHandler)(nil)

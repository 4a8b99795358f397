package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
)

type fakeVectorStore struct {
	replaced   []models.IndexedDocument
	replaceErr error
}

func (f *fakeVectorStore) QueryByText(_ context.Context, _ string, _ int) ([]models.RetrievedMatch, error) {
	return nil, nil
}

func (f *fakeVectorStore) QueryByVector(_ context.Context, _ []float32, _ int) ([]models.RetrievedMatch, error) {
	return nil, nil
}

func (f *fakeVectorStore) Insert(_ context.Context, _ []models.IndexedDocument) error { return nil }

func (f *fakeVectorStore) ReplaceAll(_ context.Context, docs []models.IndexedDocument) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = docs
	return nil
}

func (f *fakeVectorStore) Count(_ context.Context) (int, error) { return len(f.replaced), nil }
func (f *fakeVectorStore) Health(_ context.Context) error       { return nil }
func (f *fakeVectorStore) Close() error                         { return nil }

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

func (f *fakeEmbedder) Dimension() int { return len(f.vector) }

func rebuildArticles() []models.Article {
	return []models.Article{
		{
			ID:        "a1",
			Source:    "MoneyControl",
			Timestamp: time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
			Text:      "NIFTY gained 150 points in early trade.",
			Prices:    []float64{22150.35},
		},
		{
			ID:     "a2",
			Source: "Economic Times",
			Text:   "Banking stocks dropped after weak results.",
		},
	}
}

func TestRebuildReplacesIndex(t *testing.T) {
	store := &fakeVectorStore{}
	builder := NewCorpusBuilder(store, &fakeEmbedder{vector: []float32{0.1, 0.2}}, newFakeMetrics(), testLogger())

	err := builder.Rebuild(context.Background(), rebuildArticles())
	require.NoError(t, err)

	require.Len(t, store.replaced, 2)
	assert.Equal(t, "a1", store.replaced[0].ID)
	assert.Equal(t, "MoneyControl", store.replaced[0].Source)
	assert.Contains(t, store.replaced[0].Content, "Stock Market Report")
	assert.Equal(t, []float32{0.1, 0.2}, store.replaced[0].Embedding)
}

func TestRebuildEmptyIsError(t *testing.T) {
	builder := NewCorpusBuilder(&fakeVectorStore{}, &fakeEmbedder{}, newFakeMetrics(), testLogger())
	err := builder.Rebuild(context.Background(), nil)
	require.Error(t, err)
}

func TestRebuildEmbedFailure(t *testing.T) {
	metrics := newFakeMetrics()
	builder := NewCorpusBuilder(&fakeVectorStore{}, &fakeEmbedder{err: errors.New("quota exceeded")}, metrics, testLogger())

	err := builder.Rebuild(context.Background(), rebuildArticles())
	require.Error(t, err)
	assert.Equal(t, 1, metrics.errors["rebuild_embed"])
}

func TestRebuildJobPayload(t *testing.T) {
	store := &fakeVectorStore{}
	builder := NewCorpusBuilder(store, &fakeEmbedder{vector: []float32{0.5}}, newFakeMetrics(), testLogger())

	assert.Equal(t, RebuildJobType, builder.Type())

	// Payloads arrive as generic maps after the Redis round trip.
	payload := map[string]interface{}{
		"articles": []interface{}{
			map[string]interface{}{
				"id":     "a1",
				"source": "Feed",
				"text":   "NIFTY at 22000.",
			},
		},
	}
	err := builder.Handle(context.Background(), payload)
	require.NoError(t, err)
	require.Len(t, store.replaced, 1)
	assert.Equal(t, "Feed", store.replaced[0].Source)
}

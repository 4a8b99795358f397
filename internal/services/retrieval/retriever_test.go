package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
	"FinSight/pkg/logger"
)

type fakeStore struct {
	textMatches   []models.RetrievedMatch
	textErr       error
	vectorMatches []models.RetrievedMatch
	vectorErr     error
}

func (f *fakeStore) QueryByText(_ context.Context, _ string, _ int) ([]models.RetrievedMatch, error) {
	return f.textMatches, f.textErr
}

func (f *fakeStore) QueryByVector(_ context.Context, _ []float32, _ int) ([]models.RetrievedMatch, error) {
	return f.vectorMatches, f.vectorErr
}

func (f *fakeStore) Insert(_ context.Context, _ []models.IndexedDocument) error     { return nil }
func (f *fakeStore) ReplaceAll(_ context.Context, _ []models.IndexedDocument) error { return nil }
func (f *fakeStore) Count(_ context.Context) (int, error)                           { return 0, nil }
func (f *fakeStore) Health(_ context.Context) error                                 { return nil }
func (f *fakeStore) Close() error                                                   { return nil }

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, f.err
}

func (f *fakeEmbedder) Dimension() int { return len(f.vector) }

func testLogger() *logger.Logger {
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	if err != nil {
		panic(err)
	}
	return lgr
}

func TestRelevancePercent(t *testing.T) {
	assert.Equal(t, 100.0, RelevancePercent(0))
	assert.Equal(t, 0.0, RelevancePercent(2))
	assert.Equal(t, 10.0, RelevancePercent(1.8))
	assert.Equal(t, 75.0, RelevancePercent(0.5))
	// Past 2 the percentage clamps at zero.
	assert.Equal(t, 0.0, RelevancePercent(2.5))
}

func TestRetrievePrimary(t *testing.T) {
	store := &fakeStore{
		textMatches: []models.RetrievedMatch{
			{Document: "a", Distance: 0.3},
			{Document: "b", Distance: 1.2},
			{Document: "c", Distance: 1.9},
		},
	}
	r := NewRetriever(store, &fakeEmbedder{}, testLogger())

	matches, mode, err := r.Retrieve(context.Background(), "nifty trend", 3)
	require.NoError(t, err)
	assert.Equal(t, models.RetrievalPrimary, mode)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].Document)
	assert.Equal(t, "b", matches[1].Document)
}

func TestRetrieveFallback(t *testing.T) {
	store := &fakeStore{
		textErr: errors.New("text search unavailable"),
		vectorMatches: []models.RetrievedMatch{
			{Document: "a", Distance: 0.5},
		},
	}
	r := NewRetriever(store, &fakeEmbedder{vector: []float32{0.1, 0.2}}, testLogger())

	matches, mode, err := r.Retrieve(context.Background(), "nifty trend", 3)
	require.NoError(t, err)
	assert.Equal(t, models.RetrievalFallback, mode)
	require.Len(t, matches, 1)
}

func TestRetrieveBothPathsFail(t *testing.T) {
	store := &fakeStore{
		textErr:   errors.New("text search unavailable"),
		vectorErr: errors.New("vector search unavailable"),
	}
	r := NewRetriever(store, &fakeEmbedder{vector: []float32{0.1}}, testLogger())

	_, _, err := r.Retrieve(context.Background(), "nifty trend", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval failed")
}

func TestRetrieveEmptyIsNotError(t *testing.T) {
	r := NewRetriever(&fakeStore{}, &fakeEmbedder{}, testLogger())

	matches, mode, err := r.Retrieve(context.Background(), "nifty trend", 3)
	require.NoError(t, err)
	assert.Equal(t, models.RetrievalPrimary, mode)
	assert.Empty(t, matches)
}

func TestFilterPreservesOrder(t *testing.T) {
	in := []models.RetrievedMatch{
		{Document: "a", Distance: 0.1},
		{Document: "b", Distance: 1.85},
		{Document: "c", Distance: 0.9},
		{Document: "d", Distance: 1.8},
	}
	out := filterByDistance(in)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Document)
	assert.Equal(t, "c", out[1].Document)
}

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
	"FinSight/internal/services/answer"
	"FinSight/pkg/cache"
	"FinSight/pkg/logger"
)

type fakeRetriever struct {
	matches []models.RetrievedMatch
	mode    models.RetrievalMode
	err     error
	calls   int
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string, _ int) ([]models.RetrievedMatch, models.RetrievalMode, error) {
	f.calls++
	return f.matches, f.mode, f.err
}

type fakeMetrics struct {
	queries   map[string]int
	docCounts []int
	errors    map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{queries: map[string]int{}, errors: map[string]int{}}
}

func (f *fakeMetrics) RecordQuery(status string)         { f.queries[status]++ }
func (f *fakeMetrics) RecordIngest(_, _ string)          {}
func (f *fakeMetrics) RecordError(kind string)           { f.errors[kind]++ }
func (f *fakeMetrics) RecordDocCount(n int)              { f.docCounts = append(f.docCounts, n) }
func (f *fakeMetrics) RecordIndexSize(_ int)             {}
func (f *fakeMetrics) RecordLatency(_ string, _ float64) {}

type fakeQueryLog struct {
	entries []*models.QueryLogEntry
}

func (f *fakeQueryLog) Record(_ context.Context, e *models.QueryLogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeQueryLog) Health(_ context.Context) error { return nil }

func (f *fakeQueryLog) Close() error { return nil }

func testLogger() *logger.Logger {
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	if err != nil {
		panic(err)
	}
	return lgr
}

func marketMatches() []models.RetrievedMatch {
	ts := time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)
	return []models.RetrievedMatch{
		{
			Document:  "Reliance stock gained 150 points as the market rallied today.",
			Source:    "MoneyControl",
			Timestamp: ts,
			Distance:  0.4,
		},
		{
			Document:  "Banking sector stock indices dropped 200 after weak earnings.",
			Source:    "Economic Times",
			Distance:  1.1,
		},
	}
}

func TestAskComposesAnswer(t *testing.T) {
	metrics := newFakeMetrics()
	audit := &fakeQueryLog{}
	engine := NewQueryEngine(
		&fakeRetriever{matches: marketMatches(), mode: models.RetrievalPrimary},
		metrics, testLogger(), WithQueryLog(audit))

	resp, err := engine.Ask(context.Background(), "How did Reliance stock perform?", 3)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.DocCount)
	assert.Contains(t, resp.Answer, "Reliance stock gained 150 points")
	assert.Contains(t, resp.Answer, "**Sources:** MoneyControl, Economic Times")

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "MoneyControl", resp.Results[0].Source)
	assert.Equal(t, "2024-03-15T09:30:00Z", resp.Results[0].Date)
	assert.Equal(t, 80.0, resp.Results[0].Relevance)
	assert.Equal(t, "Unknown", resp.Results[1].Date)

	// Pooled numbers are 150 and 200.
	require.NotNil(t, resp.Analysis.AvgPrice)
	assert.Equal(t, 175.0, *resp.Analysis.AvgPrice)

	assert.Equal(t, 1, metrics.queries["ok"])
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "ok", audit.entries[0].Status)
	assert.Equal(t, 80.0, audit.entries[0].TopRelevance)
}

func TestAskNoResults(t *testing.T) {
	metrics := newFakeMetrics()
	engine := NewQueryEngine(
		&fakeRetriever{mode: models.RetrievalPrimary},
		metrics, testLogger())

	resp, err := engine.Ask(context.Background(), "anything about bonds?", 3)
	require.NoError(t, err)

	assert.Equal(t, NoResultsAnswer, resp.Answer)
	assert.Equal(t, NoDataStatus, resp.Analysis.Status)
	assert.Equal(t, 0, resp.DocCount)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 1, metrics.queries["no_results"])
}

func TestAskNoExtractableFacts(t *testing.T) {
	metrics := newFakeMetrics()
	engine := NewQueryEngine(
		&fakeRetriever{
			matches: []models.RetrievedMatch{{Document: "Up 2 points.", Source: "Feed", Distance: 0.5}},
			mode:    models.RetrievalPrimary,
		},
		metrics, testLogger())

	resp, err := engine.Ask(context.Background(), "nifty performance today", 3)
	require.NoError(t, err)

	assert.Equal(t, answer.NoFactsAnswer, resp.Answer)
	assert.Equal(t, 1, resp.DocCount)
	assert.Equal(t, 1, metrics.queries["no_facts"])
}

func TestAskRetrievalError(t *testing.T) {
	metrics := newFakeMetrics()
	engine := NewQueryEngine(
		&fakeRetriever{err: errors.New("store down")},
		metrics, testLogger())

	_, err := engine.Ask(context.Background(), "nifty today", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRetrievalFailed)
	assert.Equal(t, 1, metrics.errors["retrieval"])
}

func TestAskCachesAnswer(t *testing.T) {
	retriever := &fakeRetriever{matches: marketMatches(), mode: models.RetrievalPrimary}
	metrics := newFakeMetrics()
	mem := cache.NewMemoryCache(cache.WithMemoryMaxSize(16))
	defer mem.Close()
	engine := NewQueryEngine(retriever, metrics, testLogger(),
		WithAnswerCache(mem, time.Minute))

	first, err := engine.Ask(context.Background(), "nifty today", 3)
	require.NoError(t, err)

	second, err := engine.Ask(context.Background(), "nifty today", 3)
	require.NoError(t, err)

	assert.Equal(t, 1, retriever.calls)
	assert.Equal(t, first.Answer, second.Answer)
	assert.Equal(t, 1, metrics.queries["cache_hit"])
}

func TestAskClampsResultCount(t *testing.T) {
	engine := NewQueryEngine(
		&fakeRetriever{mode: models.RetrievalPrimary},
		newFakeMetrics(), testLogger())

	_, err := engine.Ask(context.Background(), "nifty today", 0)
	require.NoError(t, err)
	_, err = engine.Ask(context.Background(), "nifty today", 50)
	require.NoError(t, err)
}

func TestAskTruncatesPreview(t *testing.T) {
	long := strings.Repeat("market rally continues with index at 22000 points ", 30)
	engine := NewQueryEngine(
		&fakeRetriever{
			matches: []models.RetrievedMatch{{Document: long, Source: "Feed", Distance: 0.2}},
			mode:    models.RetrievalPrimary,
		},
		newFakeMetrics(), testLogger())

	resp, err := engine.Ask(context.Background(), "how is the market?", 1)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(resp.Results[0].Content), 500)
}

func TestReportUsesReportComposer(t *testing.T) {
	engine := NewQueryEngine(
		&fakeRetriever{matches: marketMatches(), mode: models.RetrievalPrimary},
		newFakeMetrics(), testLogger())

	resp, err := engine.Report(context.Background(), "How did Reliance stock perform?", 3)
	require.NoError(t, err)
	assert.Contains(t, resp.Answer, "Market Answer")
	assert.Contains(t, resp.Answer, "Sources Used")

	// Report responses carry per-source indicators.
	require.Contains(t, resp.Indicators, "MoneyControl")
	// A single price per document cannot fill the SMA window.
	assert.Nil(t, resp.Indicators["MoneyControl"].SMA)
	assert.Equal(t, "Insufficient data for RSI", resp.Indicators["MoneyControl"].Status)
}

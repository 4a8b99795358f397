package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinSight/internal/domain/models"
	"FinSight/internal/usecase"
	"FinSight/pkg/logger"
)

type stubRetriever struct {
	matches []models.RetrievedMatch
}

func (s *stubRetriever) Retrieve(_ context.Context, _ string, _ int) ([]models.RetrievedMatch, models.RetrievalMode, error) {
	return s.matches, models.RetrievalPrimary, nil
}

type stubMetrics struct{}

func (stubMetrics) RecordQuery(string)            {}
func (stubMetrics) RecordIngest(string, string)   {}
func (stubMetrics) RecordError(string)            {}
func (stubMetrics) RecordDocCount(int)            {}
func (stubMetrics) RecordIndexSize(int)           {}
func (stubMetrics) RecordLatency(string, float64) {}

type stubStore struct {
	count     int
	healthErr error
}

func (s *stubStore) QueryByText(context.Context, string, int) ([]models.RetrievedMatch, error) {
	return nil, nil
}

func (s *stubStore) QueryByVector(context.Context, []float32, int) ([]models.RetrievedMatch, error) {
	return nil, nil
}

func (s *stubStore) Insert(context.Context, []models.IndexedDocument) error     { return nil }
func (s *stubStore) ReplaceAll(context.Context, []models.IndexedDocument) error { return nil }
func (s *stubStore) Count(context.Context) (int, error)                         { return s.count, nil }
func (s *stubStore) Health(context.Context) error                               { return s.healthErr }
func (s *stubStore) Close() error                                               { return nil }

func newTestHandler(t *testing.T, matches []models.RetrievedMatch, opts ...QueryHandlerOption) (*echo.Echo, *QueryEchoHandler) {
	t.Helper()
	lgr, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	require.NoError(t, err)

	engine := usecase.NewQueryEngine(&stubRetriever{matches: matches}, stubMetrics{}, lgr)
	h := NewQueryEchoHandler(lgr, engine, &stubStore{count: 42}, opts...)
	e := echo.New()
	h.RegisterRoutes(e)
	return e, h
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestQueryEndpoint(t *testing.T) {
	matches := []models.RetrievedMatch{
		{Document: "Nifty index gained 150 points on strong banking earnings today.", Source: "MoneyControl", Distance: 0.4},
	}
	e, _ := newTestHandler(t, matches)

	rec := postJSON(e, "/api/query", `{"query":"how did the nifty index perform?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Nifty index gained 150 points")
	assert.Contains(t, body, "MoneyControl")
	assert.Contains(t, body, `"doc_count":1`)
}

func TestQueryValidation(t *testing.T) {
	e, _ := newTestHandler(t, nil)

	rec := postJSON(e, "/api/query", `{"query":"ab"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"status":400`)
	assert.Contains(t, body, "ERR_MIN")
}

func TestQueryNoResults(t *testing.T) {
	e, _ := newTestHandler(t, nil)

	rec := postJSON(e, "/api/query", `{"query":"anything about gold futures"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No relevant documents found for your query")
}

func TestQueryRateLimit(t *testing.T) {
	e, _ := newTestHandler(t, nil, WithRateLimit(1, 0))

	first := postJSON(e, "/api/query", `{"query":"nifty performance today"}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(e, "/api/query", `{"query":"nifty performance today"}`)
	assert.Contains(t, second.Body.String(), "ERR_RATE_LIMITED")
}

func TestReportEndpoint(t *testing.T) {
	matches := []models.RetrievedMatch{
		{Document: "Reliance stock rose 2.5% after the quarterly results were announced.", Source: "Economic Times", Distance: 0.6},
	}
	e, _ := newTestHandler(t, matches)

	rec := postJSON(e, "/api/report", `{"query":"what happened to reliance stock?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Market Answer")
}

func TestHealthEndpoint(t *testing.T) {
	e, _ := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"documents":42`)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	"FinSight/internal/services/analytics"
	"FinSight/internal/services/answer"
	"FinSight/internal/services/retrieval"
	"FinSight/pkg/cache"
	"FinSight/pkg/logger"
	"FinSight/pkg/util"
)

const (
	// NoResultsAnswer is returned when retrieval finds nothing usable.
	NoResultsAnswer = "No relevant documents found for your query. Try different keywords related to NIFTY 50 stocks."
	// NoDataStatus marks the analysis of an empty result set.
	NoDataStatus = "No data available"

	defaultResults       = 3
	maxResults           = 10
	defaultPreviewLength = 500
)

// ErrRetrievalFailed wraps retrieval errors so handlers can map them to
// a retrieval-specific HTTP error instead of a generic one.
var ErrRetrievalFailed = errors.New("retrieval failed")

// QueryEngineOption configures QueryEngine.
type QueryEngineOption func(*QueryEngine)

// WithAnswerCache enables response caching with the given TTL.
func WithAnswerCache(c cache.Service, ttl time.Duration) QueryEngineOption {
	return func(e *QueryEngine) {
		e.cache = c
		e.cacheTTL = ttl
	}
}

// WithQueryLog enables audit logging of answered queries.
func WithQueryLog(l domrepo.QueryLog) QueryEngineOption {
	return func(e *QueryEngine) {
		e.queryLog = l
	}
}

// WithPreviewLength overrides the content preview length.
func WithPreviewLength(n int) QueryEngineOption {
	return func(e *QueryEngine) {
		if n > 0 {
			e.previewLen = n
		}
	}
}

// WithIndicatorWindows overrides the SMA and RSI windows used for
// per-source indicators in report answers.
func WithIndicatorWindows(sma, rsi int) QueryEngineOption {
	return func(e *QueryEngine) {
		if sma > 0 {
			e.smaWindow = sma
		}
		if rsi > 0 {
			e.rsiWindow = rsi
		}
	}
}

// QueryEngine answers free-text market questions: retrieve, extract
// facts, analyze pooled numbers, compose the answer.
type QueryEngine struct {
	retriever  domsvc.Retriever
	metrics    domrepo.Metrics
	logger     *logger.Logger
	cache      cache.Service
	cacheTTL   time.Duration
	queryLog   domrepo.QueryLog
	previewLen int
	smaWindow  int
	rsiWindow  int
}

// NewQueryEngine creates a QueryEngine.
func NewQueryEngine(retriever domsvc.Retriever, metrics domrepo.Metrics, lgr *logger.Logger, opts ...QueryEngineOption) *QueryEngine {
	e := &QueryEngine{
		retriever:  retriever,
		metrics:    metrics,
		logger:     lgr,
		previewLen: defaultPreviewLength,
		smaWindow:  analytics.DefaultSMAWindow,
		rsiWindow:  analytics.DefaultRSIWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ask answers a question with the compact answer variant.
func (e *QueryEngine) Ask(ctx context.Context, question string, n int) (*models.AnswerResponse, error) {
	return e.answer(ctx, question, n, false)
}

// Report answers a question with the long-form report variant.
func (e *QueryEngine) Report(ctx context.Context, question string, n int) (*models.AnswerResponse, error) {
	return e.answer(ctx, question, n, true)
}

func (e *QueryEngine) answer(ctx context.Context, question string, n int, report bool) (*models.AnswerResponse, error) {
	start := time.Now()

	if n <= 0 {
		n = defaultResults
	}
	if n > maxResults {
		n = maxResults
	}

	cacheKey := e.cacheKey(question, n, report)
	if cached := e.cachedResponse(ctx, cacheKey); cached != nil {
		e.metrics.RecordQuery("cache_hit")
		return cached, nil
	}

	matches, mode, err := e.retriever.Retrieve(ctx, question, n)
	if err != nil {
		e.metrics.RecordQuery("error")
		e.metrics.RecordError("retrieval")
		e.audit(question, 0, models.AnalysisResult{}, 0, start, "error")
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	if len(matches) == 0 {
		resp := &models.AnswerResponse{
			Question: question,
			Answer:   NoResultsAnswer,
			Results:  []models.QueryResult{},
			Analysis: models.AnalysisResult{Status: NoDataStatus},
			DocCount: 0,
		}
		e.metrics.RecordQuery("no_results")
		e.audit(question, 0, resp.Analysis, 0, start, "no_results")
		e.cacheResponse(ctx, cacheKey, resp)
		return resp, nil
	}

	documents := make([]string, len(matches))
	sources := make([]string, len(matches))
	results := make([]models.QueryResult, len(matches))
	for i, m := range matches {
		documents[i] = m.Document
		sources[i] = m.Source

		source := m.Source
		if source == "" {
			source = "NIFTY Market Data"
		}
		date := "Unknown"
		if !m.Timestamp.IsZero() {
			date = m.Timestamp.Format(time.RFC3339)
		}
		results[i] = models.QueryResult{
			Content:   strings.TrimSpace(util.TruncateRunes(m.Document, e.previewLen)),
			Source:    source,
			Date:      date,
			Relevance: retrieval.RelevancePercent(m.Distance),
		}
	}

	var composed string
	if report {
		composed = answer.ComposeReport(question, documents, sources)
	} else {
		composed = answer.Compose(question, documents, sources)
	}

	analysis := analytics.Analyze(documents)

	resp := &models.AnswerResponse{
		Question: question,
		Answer:   composed,
		Results:  results,
		Analysis: analysis,
		DocCount: len(matches),
	}
	if report {
		resp.Indicators = e.sourceIndicators(matches)
	}

	status := "ok"
	if composed == answer.NoFactsAnswer {
		status = "no_facts"
	}

	e.logger.Info("query answered",
		logger.String("mode", string(mode)),
		logger.String("status", status),
		logger.Int("doc_count", resp.DocCount),
		logger.Float64("latency_ms", float64(time.Since(start).Milliseconds())))

	e.metrics.RecordQuery(status)
	e.metrics.RecordDocCount(resp.DocCount)
	e.audit(question, resp.DocCount, analysis, results[0].Relevance, start, status)
	e.cacheResponse(ctx, cacheKey, resp)
	return resp, nil
}

// sourceIndicators computes SMA and RSI per source from the prices
// found in each document. The first document seen for a source wins.
func (e *QueryEngine) sourceIndicators(matches []models.RetrievedMatch) map[string]models.IndicatorResult {
	out := make(map[string]models.IndicatorResult, len(matches))
	for _, m := range matches {
		source := m.Source
		if source == "" {
			source = "NIFTY Market Data"
		}
		if _, seen := out[source]; seen {
			continue
		}
		out[source] = analytics.ComputeIndicators(analytics.ExtractNumbers(m.Document), e.smaWindow, e.rsiWindow)
	}
	return out
}

func (e *QueryEngine) cacheKey(question string, n int, report bool) string {
	base := "answer"
	if report {
		base = "report"
	}
	return cache.GenerateKeyWithParams(base, map[string]interface{}{
		"q": cache.HashKey(question),
		"n": n,
	})
}

func (e *QueryEngine) cachedResponse(ctx context.Context, key string) *models.AnswerResponse {
	if e.cache == nil {
		return nil
	}
	var resp models.AnswerResponse
	if err := e.cache.Get(ctx, key, &resp); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			e.logger.Warn("answer cache read failed", logger.Error(err))
		}
		return nil
	}
	return &resp
}

func (e *QueryEngine) cacheResponse(ctx context.Context, key string, resp *models.AnswerResponse) {
	if e.cache == nil {
		return
	}
	if err := e.cache.Set(ctx, key, resp, e.cacheTTL); err != nil {
		e.logger.Warn("answer cache write failed", logger.Error(err))
	}
}

// audit records the query outcome; failures only log.
func (e *QueryEngine) audit(question string, docCount int, analysis models.AnalysisResult, topRelevance float64, start time.Time, status string) {
	if e.queryLog == nil {
		return
	}

	entry := &models.QueryLogEntry{
		Timestamp:    start,
		Question:     question,
		DocCount:     docCount,
		RiskLevel:    analysis.RiskLevel,
		Trend:        analysis.Trend,
		Signal:       analysis.TradingSignal,
		TopRelevance: topRelevance,
		LatencyMs:    time.Since(start).Milliseconds(),
		Status:       status,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := e.queryLog.Record(ctx, entry); err != nil {
		e.logger.Warn("query audit write failed", logger.Error(err))
	}
}

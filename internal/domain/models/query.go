package models

import "time"

// RetrievalMode records which retrieval path produced the matches.
type RetrievalMode string

const (
	RetrievalPrimary  RetrievalMode = "primary"
	RetrievalFallback RetrievalMode = "fallback"
)

// AnalysisResult holds pooled numeric statistics for a set of retrieved
// documents. Numeric fields are nil when no numbers were found; Status
// explains why.
type AnalysisResult struct {
	AvgPrice      *float64 `json:"avg_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	MinPrice      *float64 `json:"min_price,omitempty"`
	Volatility    *float64 `json:"volatility,omitempty"`
	RiskLevel     string   `json:"risk_level,omitempty"`
	Trend         string   `json:"trend,omitempty"`
	TradingSignal string   `json:"trading_signal,omitempty"`
	Status        string   `json:"status,omitempty"`
}

// IndicatorResult holds per-source technical indicators derived from
// the prices found in one document.
type IndicatorResult struct {
	SMA    *float64 `json:"sma,omitempty"`
	RSI    *float64 `json:"rsi,omitempty"`
	Status string   `json:"status,omitempty"`
}

// QueryResult is one retrieved document as returned to the caller.
type QueryResult struct {
	Content   string  `json:"content"`
	Source    string  `json:"source"`
	Date      string  `json:"date"`
	Relevance float64 `json:"relevance"`
}

// AnswerResponse is the full answer payload for a question. Indicators
// are populated only for report answers, keyed by source.
type AnswerResponse struct {
	Question   string                     `json:"question"`
	Answer     string                     `json:"answer"`
	Results    []QueryResult              `json:"results"`
	Analysis   AnalysisResult             `json:"analysis"`
	Indicators map[string]IndicatorResult `json:"indicators,omitempty"`
	DocCount   int                        `json:"doc_count"`
}

// QueryLogEntry is the audit record persisted for each answered query.
type QueryLogEntry struct {
	Timestamp    time.Time
	Question     string
	DocCount     int
	RiskLevel    string
	Trend        string
	Signal       string
	TopRelevance float64
	LatencyMs    int64
	Status       string
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	queriesTotal  *prometheus.CounterVec
	articlesTotal *prometheus.CounterVec
	errorsTotal   *prometheus.CounterVec
	docsRetrieved prometheus.Histogram
	indexedDocs   prometheus.Gauge
	latency       *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		queriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_queries_total",
				Help: "Total number of answered queries by outcome",
			},
			[]string{"status"},
		),
		articlesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_articles_ingested_total",
				Help: "Total number of articles ingested per backend and source",
			},
			[]string{"backend", "source"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "finsight_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		docsRetrieved: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "finsight_documents_retrieved",
				Help:    "Documents surviving the relevance filter per query",
				Buckets: []float64{0, 1, 2, 3, 5, 10},
			},
		),
		indexedDocs: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "finsight_indexed_documents",
				Help: "Documents currently stored in the vector index",
			},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "finsight_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordQuery records an answered query with its outcome status
// (ok, no_results, no_facts, rejected, error).
func (r *Recorder) RecordQuery(status string) {
	r.queriesTotal.WithLabelValues(status).Inc()
}

// RecordIngest records an article routed to a backend.
func (r *Recorder) RecordIngest(backend, source string) {
	r.articlesTotal.WithLabelValues(backend, source).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordDocCount records how many documents survived filtering for one query.
func (r *Recorder) RecordDocCount(n int) {
	r.docsRetrieved.Observe(float64(n))
}

// RecordIndexSize records the current document count of the vector index.
func (r *Recorder) RecordIndexSize(n int) {
	r.indexedDocs.Set(float64(n))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

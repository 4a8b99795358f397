package repository

import (
	"context"
	"database/sql"
	"fmt"

	"FinSight/internal/domain/models"
	"FinSight/internal/domain/repository"
)

// ClickHouseQueryLog persists one audit row per answered query.
type ClickHouseQueryLog struct {
	db    *sql.DB
	table string
}

// NewClickHouseQueryLog creates the audit log writer.
func NewClickHouseQueryLog(db *sql.DB, table string) repository.QueryLog {
	return &ClickHouseQueryLog{db: db, table: table}
}

// SchemaStatements returns the idempotent DDL for the audit table.
func SchemaStatements(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			ts DateTime64(3),
			question String,
			doc_count UInt32,
			risk_level String,
			trend String,
			signal String,
			top_relevance Float64,
			latency_ms Int64,
			status String
		) ENGINE = MergeTree()
		ORDER BY ts`, table),
	}
}

func (l *ClickHouseQueryLog) Record(ctx context.Context, entry *models.QueryLogEntry) error {
	q := fmt.Sprintf(`INSERT INTO %s
		(ts, question, doc_count, risk_level, trend, signal, top_relevance, latency_ms, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, l.table)

	_, err := l.db.ExecContext(ctx, q,
		entry.Timestamp,
		entry.Question,
		uint32(entry.DocCount),
		entry.RiskLevel,
		entry.Trend,
		entry.Signal,
		entry.TopRelevance,
		entry.LatencyMs,
		entry.Status,
	)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	return nil
}

func (l *ClickHouseQueryLog) Health(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

func (l *ClickHouseQueryLog) Close() error {
	return nil // pool owned by pkg/clickhouse client
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"FinSight/internal/domain/models"
	"FinSight/internal/domain/repository"
)

// PostgresVectorStore keeps rendered news documents in Postgres with a
// pgvector column and answers nearest-neighbour queries by cosine
// distance. Text queries are embedded through the injected embedder
// before the vector search runs.
type PostgresVectorStore struct {
	db       *sql.DB
	table    string
	embedder repository.Embedder
}

// NewPostgresVectorStore opens the connection pool and ensures the
// documents table and index exist.
func NewPostgresVectorStore(dsn, table string, embedder repository.Embedder) (*PostgresVectorStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	s := &PostgresVectorStore{db: db, table: table, embedder: embedder}
	if err := s.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresVectorStore) initSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			ts TIMESTAMPTZ NOT NULL DEFAULT now(),
			embedding vector(%d) NOT NULL
		)`, s.table, s.embedder.Dimension()),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_embedding_idx ON %s
			USING hnsw (embedding vector_cosine_ops)`, s.table, s.table),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

// QueryByText embeds the text and searches by vector.
func (s *PostgresVectorStore) QueryByText(ctx context.Context, text string, n int) ([]models.RetrievedMatch, error) {
	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	return s.QueryByVector(ctx, vector, n)
}

// QueryByVector returns the n nearest documents in ascending cosine
// distance order.
func (s *PostgresVectorStore) QueryByVector(ctx context.Context, vector []float32, n int) ([]models.RetrievedMatch, error) {
	q := fmt.Sprintf(`SELECT content, source, ts, embedding <=> $1 AS distance
		FROM %s ORDER BY distance LIMIT $2`, s.table)

	rows, err := s.db.QueryContext(ctx, q, pgvector.NewVector(vector), n)
	if err != nil {
		return nil, fmt.Errorf("similarity query: %w", err)
	}
	defer rows.Close()

	var matches []models.RetrievedMatch
	for rows.Next() {
		var m models.RetrievedMatch
		if err := rows.Scan(&m.Document, &m.Source, &m.Timestamp, &m.Distance); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return matches, nil
}

// Insert adds documents to the index.
func (s *PostgresVectorStore) Insert(ctx context.Context, docs []models.IndexedDocument) error {
	return s.insertTx(ctx, s.db, docs)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *PostgresVectorStore) insertTx(ctx context.Context, ex execer, docs []models.IndexedDocument) error {
	q := fmt.Sprintf(`INSERT INTO %s (id, content, source, ts, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			content = EXCLUDED.content,
			source = EXCLUDED.source,
			ts = EXCLUDED.ts,
			embedding = EXCLUDED.embedding`, s.table)

	for _, doc := range docs {
		_, err := ex.ExecContext(ctx, q,
			doc.ID, doc.Content, doc.Source, doc.Timestamp, pgvector.NewVector(doc.Embedding))
		if err != nil {
			return fmt.Errorf("insert document %s: %w", doc.ID, err)
		}
	}
	return nil
}

// ReplaceAll swaps the whole corpus in one transaction so readers never
// observe a half-built index.
func (s *PostgresVectorStore) ReplaceAll(ctx context.Context, docs []models.IndexedDocument) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table)); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}
	if err := s.insertTx(ctx, tx, docs); err != nil {
		return err
	}
	return tx.Commit()
}

// Count returns the number of indexed documents.
func (s *PostgresVectorStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT count(*) FROM %s`, s.table)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

// Health pings the database.
func (s *PostgresVectorStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *PostgresVectorStore) Close() error {
	return s.db.Close()
}

var _ repository.VectorStore = (*PostgresVectorStore)(nil)

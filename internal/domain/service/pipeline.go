package service

import (
	"context"

	"FinSight/internal/domain/models"
)

// Retriever answers semantic lookups over the news corpus. Matches come
// back in ascending distance order together with the path that produced
// them (primary text search or local-embedding fallback).
type Retriever interface {
	Retrieve(ctx context.Context, query string, n int) ([]models.RetrievedMatch, models.RetrievalMode, error)
}

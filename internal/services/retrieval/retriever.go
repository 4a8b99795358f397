package retrieval

import (
	"context"
	"fmt"

	"FinSight/internal/domain/models"
	"FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	"FinSight/pkg/logger"
)

// Retriever runs semantic lookups against the vector store with a
// local-embedding fallback when the store-side text search fails.
type Retriever struct {
	store    repository.VectorStore
	embedder repository.Embedder
	logger   *logger.Logger
}

// NewRetriever creates a Retriever.
func NewRetriever(store repository.VectorStore, embedder repository.Embedder, lgr *logger.Logger) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
		logger:   lgr,
	}
}

// Retrieve returns up to n matches closer than the distance threshold,
// preserving the store's ascending distance order. An empty result is
// not an error; an error means both retrieval paths failed.
func (r *Retriever) Retrieve(ctx context.Context, query string, n int) ([]models.RetrievedMatch, models.RetrievalMode, error) {
	matches, err := r.store.QueryByText(ctx, query, n)
	if err == nil {
		return filterByDistance(matches), models.RetrievalPrimary, nil
	}

	r.logger.Warn("primary retrieval failed, trying embedding fallback",
		logger.Error(err))

	vector, embErr := r.embedder.Embed(ctx, query)
	if embErr != nil {
		return nil, "", fmt.Errorf("retrieval failed: primary: %v, fallback embed: %w", err, embErr)
	}

	matches, fbErr := r.store.QueryByVector(ctx, vector, n)
	if fbErr != nil {
		return nil, "", fmt.Errorf("retrieval failed: primary: %v, fallback: %w", err, fbErr)
	}

	return filterByDistance(matches), models.RetrievalFallback, nil
}

// filterByDistance drops matches at or beyond the threshold without
// reordering the rest.
func filterByDistance(matches []models.RetrievedMatch) []models.RetrievedMatch {
	kept := make([]models.RetrievedMatch, 0, len(matches))
	for _, m := range matches {
		if m.Distance < DistanceThreshold {
			kept = append(kept, m)
		}
	}
	return kept
}

var _ domsvc.Retriever = (*Retriever)(nil)

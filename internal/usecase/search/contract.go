package search

import (
	"context"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
)

// SimilaritySource retrieves article candidates ordered by ascending distance.
type SimilaritySource interface {
	SearchSimilar(
		ctx context.Context, vector []float32, k, sinceYear int, withVectors bool,
	) ([]domart.Candidate, error)
}

// UnitReader resolves unit membership for the pre-truncation unit filter.
type UnitReader interface {
	ListIDsInUnit(ctx context.Context, unitID string) (map[string]struct{}, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

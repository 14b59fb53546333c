// Package article adapts the store's vector index into the engine's
// similarity source and article lookups.
package article

import (
	"context"
	"fmt"

	"github.com/UW-Madison-DSI/faculty-search/internal/db"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
)

const indexName = domain.KeyPrefix + "articles:idx"

// store is the consumer interface for article queries.
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchQuery(ctx context.Context, q *db.FieldQuery) (*db.SearchResult, error)
}

// Repo implements the engine's SimilaritySource and article queries.
type Repo struct {
	store store
}

// New creates an article repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// SearchSimilar returns up to k candidates ordered by ascending distance.
// sinceYear restricts the pool to articles published in or after that year.
// withVectors controls whether article embeddings are fetched (needed only
// for the projection path; the blobs are large).
func (r *Repo) SearchSimilar(
	ctx context.Context, vector []float32, k, sinceYear int, withVectors bool,
) ([]domart.Candidate, error) {
	returnFields := []string{"doi", "author_id", "title", "publication_year", "cited_by"}
	if withVectors {
		returnFields = append(returnFields, "vector")
	}

	q := &db.KNNQuery{
		IndexName:    indexName,
		Vector:       vector,
		K:            k,
		Filter:       fmt.Sprintf("@publication_year:[%d +inf]", sinceYear),
		ReturnFields: returnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w: %w", domain.ErrStoreUnavailable, err)
	}

	candidates := make([]domart.Candidate, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		candidates = append(candidates, candidateFromEntry(entry, withVectors))
	}
	return candidates, nil
}

// ListByAuthor returns all articles owned by authorID published in or after
// sinceYear. An author with no matching articles yields an empty slice.
func (r *Repo) ListByAuthor(
	ctx context.Context, authorID string, sinceYear int,
) ([]domart.Article, error) {
	q := &db.FieldQuery{
		IndexName: indexName,
		Query: fmt.Sprintf("@author_id:{%s} @publication_year:[%d +inf]",
			escapeTag(authorID), sinceYear),
		Limit:        maxAuthorArticles,
		ReturnFields: []string{"doi", "author_id", "title", "publication_year", "cited_by"},
	}

	sr, err := r.store.SearchQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list author articles: %w: %w", domain.ErrStoreUnavailable, err)
	}

	articles := make([]domart.Article, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		articles = append(articles, articleFromFields(entry.Fields))
	}
	return articles, nil
}

// maxAuthorArticles bounds the per-author article listing.
const maxAuthorArticles = 1000

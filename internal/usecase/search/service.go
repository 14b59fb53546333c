// Package search implements the ranking engine: embed the query, retrieve
// article candidates by vector similarity, filter by distance, and optionally
// aggregate article relevance into author scores.
package search

import (
	"context"
	"fmt"
	"time"

	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/query"
)

// VisualizationPoolSize caps the candidate pool used for plot data. The
// projection pool is deliberately larger than the displayed result list so
// the 2D neighborhood has enough context around the query.
const VisualizationPoolSize = 1000

// Service is the search engine. Stateless across requests.
type Service struct {
	source SimilaritySource
	units  UnitReader
	embed  Embedder
	now    func() time.Time
}

// New creates a search service.
func New(source SimilaritySource, units UnitReader, embed Embedder) *Service {
	return &Service{source: source, units: units, embed: embed, now: time.Now}
}

// WithClock overrides the time source. Used by tests to pin the recency term.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ArticlesResult is the outcome of an article search.
type ArticlesResult struct {
	Articles []domart.Candidate
	// QueryVector is the embedded query, retained for the projection path.
	QueryVector []float32
	// PlotPool holds the wider candidate set (with vectors) when a plot was
	// requested; nil otherwise.
	PlotPool []domart.Candidate
}

// AuthorsResult is the outcome of an author search.
type AuthorsResult struct {
	Authors []domauthor.Ranked
	// Evidence is the full filtered candidate pool (pre top-m cap), present
	// only when requested.
	Evidence []domart.Candidate
	// QueryVector and PlotPool serve the projection path, as in ArticlesResult.
	QueryVector []float32
	PlotPool    []domart.Candidate
}

// SearchArticles embeds the query, retrieves the candidate pool, and filters
// by distance. Results stay in similarity order. Zero survivors is an empty
// list, not an error.
func (s *Service) SearchArticles(ctx context.Context, req *query.Articles) (*ArticlesResult, error) {
	embResult, err := s.embed.Embed(ctx, req.Text())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	vector := embResult.Embedding

	candidates, err := s.source.SearchSimilar(ctx, vector, req.TopK(), req.SinceYear(), false)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	result := &ArticlesResult{
		Articles:    filterByDistance(candidates, req.DistanceThreshold()),
		QueryVector: vector,
	}

	if req.WithPlot() {
		pool, err := s.source.SearchSimilar(ctx, vector, VisualizationPoolSize, req.SinceYear(), true)
		if err != nil {
			return nil, fmt.Errorf("visualization search: %w", err)
		}
		result.PlotPool = pool
	}

	return result, nil
}

// SearchAuthors runs the article pipeline over the aggregation pool (size n,
// not top_k), then folds candidates into per-author scores and ranks them.
func (s *Service) SearchAuthors(ctx context.Context, req *query.Authors) (*AuthorsResult, error) {
	artsReq := req.ArticlesQuery()
	arts, err := s.SearchArticles(ctx, &artsReq)
	if err != nil {
		return nil, err
	}

	scores := aggregateByAuthor(arts.Articles, req.PerAuthorCap(), weightParams{
		mode:    req.Weighting(),
		pow:     req.Pow(),
		ks:      req.KS(),
		ka:      req.KA(),
		kr:      req.KR(),
		nowYear: s.now().Year(),
	})

	var unitIDs map[string]struct{}
	if req.FilterUnit() != "" {
		unitIDs, err = s.units.ListIDsInUnit(ctx, req.FilterUnit())
		if err != nil {
			return nil, fmt.Errorf("resolve unit %s: %w", req.FilterUnit(), err)
		}
	}

	result := &AuthorsResult{
		Authors:     rankAuthors(scores, req.TopK(), unitIDs),
		QueryVector: arts.QueryVector,
		PlotPool:    arts.PlotPool,
	}
	if req.WithEvidence() {
		result.Evidence = arts.Articles
	}

	return result, nil
}

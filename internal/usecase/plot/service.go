// Package plot assembles the 2D projection of a search result: the query,
// its candidate articles, and a query-scoped centroid per author.
package plot

import (
	"context"
	"fmt"
	"time"

	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domplot "github.com/UW-Madison-DSI/faculty-search/internal/domain/plot"
	"github.com/UW-Madison-DSI/faculty-search/internal/metrics"
)

// queryPointID labels the query row in the output.
const queryPointID = "query"

// Service builds plot data from a candidate pool.
type Service struct {
	projector Projector
	names     NameReader
}

// New creates a plot service.
func New(projector Projector, names NameReader) *Service {
	return &Service{projector: projector, names: names}
}

// Assemble projects the query and candidates into 2D and attaches metadata.
//
// Matrix layout: row 0 is the query, rows 1..n the articles in candidate
// order, then one centroid row per distinct author in first-seen order. The
// centroid is the mean of that author's candidate-article embeddings only —
// query-scoped, not the author's global body of work. With zero candidates
// the result is just the query point.
func (s *Service) Assemble(
	ctx context.Context, queryText string, queryVector []float32, candidates []domart.Candidate,
) (*domplot.Data, error) {
	if len(candidates) == 0 {
		return &domplot.Data{Points: []domplot.Point{{
			ID:    queryPointID,
			Label: queryText,
			Type:  domplot.TypeQuery,
		}}}, nil
	}

	authorIDs, centroids := authorCentroids(candidates)

	matrix := make([][]float64, 0, 1+len(candidates)+len(authorIDs))
	matrix = append(matrix, toFloat64(queryVector))
	for i := range candidates {
		matrix = append(matrix, toFloat64(candidates[i].Vector()))
	}
	matrix = append(matrix, centroids...)

	start := time.Now()
	coords, err := s.projector.Project(matrix)
	metrics.ProjectionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("project embeddings: %w", err)
	}
	if len(coords) != len(matrix) {
		return nil, fmt.Errorf("projection returned %d points for %d rows", len(coords), len(matrix))
	}

	names, err := s.names.GetNames(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve author names: %w", err)
	}

	points := make([]domplot.Point, 0, len(matrix))
	points = append(points, domplot.Point{
		ID:    queryPointID,
		Label: queryText,
		Type:  domplot.TypeQuery,
		X:     coords[0][0],
		Y:     coords[0][1],
	})

	for i := range candidates {
		c := &candidates[i]
		points = append(points, domplot.Point{
			ID:       c.DOI(),
			ParentID: c.AuthorID(),
			Label:    c.Title(),
			Type:     domplot.TypeArticle,
			X:        coords[1+i][0],
			Y:        coords[1+i][1],
		})
	}

	offset := 1 + len(candidates)
	for i, id := range authorIDs {
		points = append(points, domplot.Point{
			ID:       id,
			ParentID: id,
			Label:    names[i],
			Type:     domplot.TypeAuthor,
			X:        coords[offset+i][0],
			Y:        coords[offset+i][1],
		})
	}

	return &domplot.Data{Points: points}, nil
}

// authorCentroids computes the mean embedding per distinct author, in order
// of first appearance in the candidate list.
func authorCentroids(candidates []domart.Candidate) ([]string, [][]float64) {
	order := make([]string, 0)
	sums := make(map[string][]float64)
	counts := make(map[string]int)

	for i := range candidates {
		c := &candidates[i]
		id := c.AuthorID()
		vec := c.Vector()

		sum, ok := sums[id]
		if !ok {
			sum = make([]float64, len(vec))
			sums[id] = sum
			order = append(order, id)
		}
		for j, v := range vec {
			if j < len(sum) {
				sum[j] += float64(v)
			}
		}
		counts[id]++
	}

	centroids := make([][]float64, 0, len(order))
	for _, id := range order {
		sum := sums[id]
		n := float64(counts[id])
		centroid := make([]float64, len(sum))
		for j, v := range sum {
			centroid[j] = v / n
		}
		centroids = append(centroids, centroid)
	}
	return order, centroids
}

func toFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

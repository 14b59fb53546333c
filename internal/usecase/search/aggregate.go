package search

import (
	"math"
	"sort"

	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/query"
)

// weightParams holds the candidate weighting configuration.
type weightParams struct {
	mode    query.Weighting
	pow     float64
	ks      float64
	ka      float64
	kr      float64
	nowYear int
}

// weigh computes one candidate's contribution.
//
// Similarity S = (1-d)^pow. Authority A = log10(cited_by+1).
// Recency R = 1/log10(now-year+2); the denominator argument is clamped to a
// minimum of 2 so articles dated this year or in the future cannot produce a
// zero or negative log.
func weigh(c *domart.Candidate, p weightParams) float64 {
	s := math.Pow(1-c.Distance(), p.pow)
	if p.mode == query.WeightSimilarity {
		return s
	}

	a := math.Log10(float64(c.CitedBy()) + 1)

	span := float64(p.nowYear - c.Year() + 2)
	if span < 2 {
		span = 2
	}
	r := 1 / math.Log10(span)

	return p.ks*s + p.ka*a + p.kr*r
}

// aggregateByAuthor turns the filtered candidate list into per-author scores.
//
// Candidates are grouped by author; within a group only the m highest-weight
// articles contribute, so an author's score rewards their best matches rather
// than their sheer output. Equal weights keep the earlier candidate (stable,
// first-seen wins), which makes the output deterministic for a fixed input.
// Returned order follows first appearance of each author in the candidate list.
func aggregateByAuthor(candidates []domart.Candidate, m int, p weightParams) []domauthor.Ranked {
	type group struct {
		weights []float64
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for i := range candidates {
		c := &candidates[i]
		g, ok := groups[c.AuthorID()]
		if !ok {
			g = &group{}
			groups[c.AuthorID()] = g
			order = append(order, c.AuthorID())
		}
		g.weights = append(g.weights, weigh(c, p))
	}

	scores := make([]domauthor.Ranked, 0, len(order))
	for _, id := range order {
		scores = append(scores, domauthor.Ranked{
			ID:    id,
			Score: sumTopM(groups[id].weights, m),
		})
	}
	return scores
}

// sumTopM sums the m largest weights. Fewer than m weights means all of them;
// ties keep the earlier weight, so the selection is stable.
func sumTopM(weights []float64, m int) float64 {
	if len(weights) > m {
		idx := make([]int, len(weights))
		for i := range idx {
			idx[i] = i
		}
		// Strict > keeps original order among equals.
		sort.SliceStable(idx, func(a, b int) bool {
			return weights[idx[a]] > weights[idx[b]]
		})
		idx = idx[:m]

		var sum float64
		for _, i := range idx {
			sum += weights[i]
		}
		return sum
	}

	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum
}

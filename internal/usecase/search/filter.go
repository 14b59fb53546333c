package search

import domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"

// filterByDistance keeps candidates strictly below the distance threshold.
// A candidate sitting exactly on the threshold is dropped. Input order is
// preserved (the source already ranks by similarity), so the function is
// idempotent for a fixed threshold.
func filterByDistance(candidates []domart.Candidate, threshold float64) []domart.Candidate {
	kept := make([]domart.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Distance() < threshold {
			kept = append(kept, c)
		}
	}
	return kept
}

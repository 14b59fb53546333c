package query

// Weighting selects how a candidate's contribution to its author is computed.
type Weighting string

const (
	// WeightSimilarity scores by the similarity power-law alone: W = (1-d)^pow.
	WeightSimilarity Weighting = "similarity"
	// WeightLinear blends similarity, citation authority, and recency:
	// W = ks*(1-d)^pow + ka*log10(cited_by+1) + kr/log10(now-year+2).
	WeightLinear Weighting = "linear"
)

// IsValid reports whether w is a known weighting mode.
func (w Weighting) IsValid() bool {
	return w == WeightSimilarity || w == WeightLinear
}

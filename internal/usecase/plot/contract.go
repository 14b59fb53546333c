package plot

import "context"

// Projector reduces an N x D matrix to N 2D points in one batch. The batch
// matters: coordinates are only meaningful relative to rows projected together.
type Projector interface {
	Project(matrix [][]float64) ([][2]float64, error)
}

// NameReader resolves author display names for centroid labels.
type NameReader interface {
	GetNames(ctx context.Context, ids []string) ([]string, error)
}

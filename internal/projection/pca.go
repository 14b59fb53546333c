// Package projection provides the default 2D projector: principal component
// analysis via power iteration. PCA keeps the projection deterministic for a
// fixed input batch, which the plot contract requires.
package projection

import (
	"fmt"
	"math"
)

const (
	maxIterations = 200
	tolerance     = 1e-9
)

// PCA projects row vectors onto their first two principal components.
type PCA struct{}

// NewPCA creates a PCA projector.
func NewPCA() *PCA {
	return &PCA{}
}

// Project reduces an N x D matrix to N 2D coordinates. All rows must share
// the same dimensionality. N < 3 degenerates gracefully: one row maps to the
// origin, two rows spread along the first axis.
func (p *PCA) Project(matrix [][]float64) ([][2]float64, error) {
	n := len(matrix)
	if n == 0 {
		return nil, nil
	}
	d := len(matrix[0])
	for i, row := range matrix {
		if len(row) != d {
			return nil, fmt.Errorf("row %d has %d dims, want %d", i, len(row), d)
		}
	}
	if d == 0 {
		return nil, fmt.Errorf("rows have zero dimensions")
	}

	centered := center(matrix)

	coords := make([][2]float64, n)
	if n == 1 {
		return coords, nil
	}

	first := principalComponent(centered, nil)
	second := principalComponent(centered, first)

	for i, row := range centered {
		coords[i][0] = dot(row, first)
		coords[i][1] = dot(row, second)
	}
	return coords, nil
}

// center subtracts the column means.
func center(matrix [][]float64) [][]float64 {
	n := len(matrix)
	d := len(matrix[0])

	means := make([]float64, d)
	for _, row := range matrix {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	centered := make([][]float64, n)
	for i, row := range matrix {
		c := make([]float64, d)
		for j, v := range row {
			c[j] = v - means[j]
		}
		centered[i] = c
	}
	return centered
}

// principalComponent finds the dominant eigenvector of AᵀA by power
// iteration without materializing the covariance matrix. A non-nil deflate
// vector is projected out each step, yielding the next component. The start
// vector is fixed, so the result is deterministic.
func principalComponent(centered [][]float64, deflate []float64) []float64 {
	d := len(centered[0])

	v := make([]float64, d)
	for j := range v {
		// Deterministic non-uniform start; avoids being orthogonal to the
		// component for typical data.
		v[j] = 1 / float64(j+1)
	}
	if deflate != nil {
		orthogonalize(v, deflate)
	}
	normalize(v)

	prev := make([]float64, d)
	for iter := 0; iter < maxIterations; iter++ {
		copy(prev, v)

		// v <- Aᵀ(A v)
		next := make([]float64, d)
		for _, row := range centered {
			p := dot(row, v)
			for j, rv := range row {
				next[j] += p * rv
			}
		}

		if deflate != nil {
			orthogonalize(next, deflate)
		}
		if norm(next) < tolerance {
			// Data has no variance in the remaining subspace.
			return next
		}
		normalize(next)
		copy(v, next)

		if converged(v, prev) {
			break
		}
	}
	return v
}

func converged(a, b []float64) bool {
	// Eigenvectors are sign-ambiguous; compare up to sign.
	var diff, sum float64
	for j := range a {
		diff += (a[j] - b[j]) * (a[j] - b[j])
		sum += (a[j] + b[j]) * (a[j] + b[j])
	}
	return math.Min(diff, sum) < tolerance
}

func orthogonalize(v, against []float64) {
	p := dot(v, against)
	for j := range v {
		v[j] -= p * against[j]
	}
}

func dot(a, b []float64) float64 {
	var sum float64
	for j := range a {
		sum += a[j] * b[j]
	}
	return sum
}

func norm(v []float64) float64 {
	return math.Sqrt(dot(v, v))
}

func normalize(v []float64) {
	n := norm(v)
	if n == 0 {
		return
	}
	for j := range v {
		v[j] /= n
	}
}

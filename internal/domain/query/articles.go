// Package query holds validated request value types. Construction is the
// validation boundary: a value that exists is a value the engine may trust.
package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
)

// Defaults and limits for article search.
const (
	DefaultTopK              = 3
	DefaultDistanceThreshold = 0.2
	DefaultSinceYear         = 1900
	MaxQueryLength           = 4096
)

// Articles is a validated article search request.
type Articles struct {
	text              string
	topK              int
	distanceThreshold float64
	sinceYear         int
	withPlot          bool
}

// NewArticles validates and normalizes article search parameters.
// Absent values take defaults: topK=3, distanceThreshold=0.2, sinceYear=1900.
// distanceThreshold is a pointer because 0 is a meaningful value (keep
// nothing); nil means "use the default".
func NewArticles(text string, topK int, distanceThreshold *float64, sinceYear int, withPlot bool) (Articles, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Articles{}, fmt.Errorf("%w: query must not be empty", domain.ErrValidation)
	}
	if len(text) > MaxQueryLength {
		return Articles{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrValidation, MaxQueryLength)
	}
	if topK == 0 {
		topK = DefaultTopK
	}
	if topK < 0 {
		return Articles{}, fmt.Errorf("%w: top_k must be positive", domain.ErrValidation)
	}
	threshold := valueOr(distanceThreshold, DefaultDistanceThreshold)
	if threshold < 0 || threshold > 1 {
		return Articles{}, fmt.Errorf("%w: distance_threshold must be between 0 and 1", domain.ErrValidation)
	}
	if sinceYear == 0 {
		sinceYear = DefaultSinceYear
	}
	if sinceYear > time.Now().Year() {
		return Articles{}, fmt.Errorf("%w: since_year must not be in the future", domain.ErrValidation)
	}

	return Articles{
		text:              text,
		topK:              topK,
		distanceThreshold: threshold,
		sinceYear:         sinceYear,
		withPlot:          withPlot,
	}, nil
}

// valueOr dereferences p, falling back to def when p is nil. nil is the only
// "absent" marker: an explicit zero is passed through untouched.
func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Text returns the trimmed query text.
func (a *Articles) Text() string { return a.text }

// TopK returns the number of articles to return.
func (a *Articles) TopK() int { return a.topK }

// DistanceThreshold returns the maximum accepted distance (exclusive).
func (a *Articles) DistanceThreshold() float64 { return a.distanceThreshold }

// SinceYear returns the earliest publication year to consider.
func (a *Articles) SinceYear() int { return a.sinceYear }

// WithPlot reports whether a 2D projection was requested.
func (a *Articles) WithPlot() bool { return a.withPlot }

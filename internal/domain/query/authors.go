package query

import (
	"fmt"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
)

// Defaults for author search. The aggregation pool n is deliberately larger
// than the returned author count: the aggregator needs article-level signal
// well past the final cut.
const (
	DefaultPoolSize       = 500
	DefaultPerAuthorCap   = 5
	DefaultPow            = 3.0
	DefaultSimilarityGain = 1.0
	DefaultAuthorityGain  = 1.0
	DefaultRecencyGain    = 1.0
)

// Authors is a validated author search request.
type Authors struct {
	articles     Articles
	poolSize     int
	perAuthorCap int
	weighting    Weighting
	pow          float64
	ks           float64
	ka           float64
	kr           float64
	filterUnit   string
	withEvidence bool
}

// AuthorsParams carries the raw author search parameters into NewAuthors.
// Zero values take defaults. The threshold and gains are pointers because
// zero is meaningful for them (keep nothing / mute a term); nil means absent.
type AuthorsParams struct {
	Text              string
	TopK              int
	PoolSize          int // n: articles retrieved for aggregation
	PerAuthorCap      int // m: max contributing articles per author
	DistanceThreshold *float64
	SinceYear         int
	Weighting         Weighting
	Pow               float64
	KS                *float64
	KA                *float64
	KR                *float64
	FilterUnit        string
	WithPlot          bool
	WithEvidence      bool
}

// NewAuthors validates and normalizes author search parameters.
func NewAuthors(p AuthorsParams) (Authors, error) {
	arts, err := NewArticles(p.Text, p.TopK, p.DistanceThreshold, p.SinceYear, p.WithPlot)
	if err != nil {
		return Authors{}, err
	}

	if p.PoolSize == 0 {
		p.PoolSize = DefaultPoolSize
	}
	if p.PoolSize < 0 {
		return Authors{}, fmt.Errorf("%w: n must be positive", domain.ErrValidation)
	}
	if p.PerAuthorCap == 0 {
		p.PerAuthorCap = DefaultPerAuthorCap
	}
	if p.PerAuthorCap < 0 {
		return Authors{}, fmt.Errorf("%w: m must be positive", domain.ErrValidation)
	}
	if p.Weighting == "" {
		p.Weighting = WeightLinear
	}
	if !p.Weighting.IsValid() {
		return Authors{}, fmt.Errorf("%w: unknown weighting %q", domain.ErrValidation, p.Weighting)
	}
	if p.Pow == 0 {
		p.Pow = DefaultPow
	}

	// Only absent gains default; an explicit 0 mutes that term.
	ks, ka, kr := valueOr(p.KS, 0), valueOr(p.KA, 0), valueOr(p.KR, 0)
	if p.Weighting == WeightLinear {
		ks = valueOr(p.KS, DefaultSimilarityGain)
		ka = valueOr(p.KA, DefaultAuthorityGain)
		kr = valueOr(p.KR, DefaultRecencyGain)
	}

	return Authors{
		articles:     arts,
		poolSize:     p.PoolSize,
		perAuthorCap: p.PerAuthorCap,
		weighting:    p.Weighting,
		pow:          p.Pow,
		ks:           ks,
		ka:           ka,
		kr:           kr,
		filterUnit:   p.FilterUnit,
		withEvidence: p.WithEvidence,
	}, nil
}

// Text returns the trimmed query text.
func (a *Authors) Text() string { return a.articles.Text() }

// TopK returns the number of authors to return.
func (a *Authors) TopK() int { return a.articles.TopK() }

// PoolSize returns n, the article pool retrieved for aggregation.
func (a *Authors) PoolSize() int { return a.poolSize }

// PerAuthorCap returns m, the max contributing articles per author.
func (a *Authors) PerAuthorCap() int { return a.perAuthorCap }

// DistanceThreshold returns the maximum accepted distance (exclusive).
func (a *Authors) DistanceThreshold() float64 { return a.articles.DistanceThreshold() }

// SinceYear returns the earliest publication year to consider.
func (a *Authors) SinceYear() int { return a.articles.SinceYear() }

// Weighting returns the weight mode.
func (a *Authors) Weighting() Weighting { return a.weighting }

// Pow returns the similarity exponent.
func (a *Authors) Pow() float64 { return a.pow }

// KS returns the similarity gain.
func (a *Authors) KS() float64 { return a.ks }

// KA returns the authority gain.
func (a *Authors) KA() float64 { return a.ka }

// KR returns the recency gain.
func (a *Authors) KR() float64 { return a.kr }

// FilterUnit returns the optional unit id restriction ("" = no filter).
func (a *Authors) FilterUnit() string { return a.filterUnit }

// WithPlot reports whether a 2D projection was requested.
func (a *Authors) WithPlot() bool { return a.articles.WithPlot() }

// WithEvidence reports whether contributing articles should be returned.
func (a *Authors) WithEvidence() bool { return a.withEvidence }

// ArticlesQuery returns the article-level view of this request with the
// aggregation pool size substituted for top_k.
func (a *Authors) ArticlesQuery() Articles {
	arts := a.articles
	arts.topK = a.poolSize
	return arts
}

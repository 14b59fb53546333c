package chi

import (
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/plot"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/query"
	authoruc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/author"
)

// Error codes returned in the body of non-2xx responses.
const (
	codeBadRequest             = "BAD_REQUEST"
	codeValidationFailed       = "VALIDATION_FAILED"
	codeAuthorNotFound         = "AUTHOR_NOT_FOUND"
	codeEmbeddingProviderError = "EMBEDDING_PROVIDER_ERROR"
	codeStoreUnavailable       = "STORE_UNAVAILABLE"
	codeInternalError          = "INTERNAL_ERROR"
	codeUnauthorized           = "UNAUTHORIZED"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchDefaults supplies deploy-time fallbacks for omitted request
// parameters. Zero values fall through to the query package defaults.
type SearchDefaults struct {
	DistanceThreshold float64
	PoolSize          int
	PerAuthorCap      int
	Pow               float64
}

// Optional parameters are pointers so an omitted field is distinguishable
// from an explicit zero; omitted fields take server-side defaults.
type searchArticlesRequest struct {
	Query             string   `json:"query"`
	TopK              *int     `json:"top_k,omitempty"`
	DistanceThreshold *float64 `json:"distance_threshold,omitempty"`
	SinceYear         *int     `json:"since_year,omitempty"`
	WithPlot          bool     `json:"with_plot,omitempty"`
}

func (r *searchArticlesRequest) toQuery(d SearchDefaults) (query.Articles, error) {
	return query.NewArticles(
		r.Query,
		intOrZero(r.TopK),
		floatPtrOr(r.DistanceThreshold, d.DistanceThreshold),
		intOrZero(r.SinceYear),
		r.WithPlot,
	)
}

type searchAuthorsRequest struct {
	Query             string   `json:"query"`
	TopK              *int     `json:"top_k,omitempty"`
	N                 *int     `json:"n,omitempty"`
	M                 *int     `json:"m,omitempty"`
	DistanceThreshold *float64 `json:"distance_threshold,omitempty"`
	SinceYear         *int     `json:"since_year,omitempty"`
	Weighting         string   `json:"weighting,omitempty"`
	Pow               *float64 `json:"pow,omitempty"`
	KS                *float64 `json:"ks,omitempty"`
	KA                *float64 `json:"ka,omitempty"`
	KR                *float64 `json:"kr,omitempty"`
	FilterUnit        string   `json:"filter_unit,omitempty"`
	WithPlot          bool     `json:"with_plot,omitempty"`
	WithEvidence      bool     `json:"with_evidence,omitempty"`
}

func (r *searchAuthorsRequest) toQuery(d SearchDefaults) (query.Authors, error) {
	return query.NewAuthors(query.AuthorsParams{
		Text:              r.Query,
		TopK:              intOrZero(r.TopK),
		PoolSize:          intOr(r.N, d.PoolSize),
		PerAuthorCap:      intOr(r.M, d.PerAuthorCap),
		DistanceThreshold: floatPtrOr(r.DistanceThreshold, d.DistanceThreshold),
		SinceYear:         intOrZero(r.SinceYear),
		Weighting:         query.Weighting(r.Weighting),
		Pow:               floatOr(r.Pow, d.Pow),
		KS:                r.KS,
		KA:                r.KA,
		KR:                r.KR,
		FilterUnit:        r.FilterUnit,
		WithPlot:          r.WithPlot,
		WithEvidence:      r.WithEvidence,
	})
}

type getAuthorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SinceYear int    `json:"since_year,omitempty"`
}

type getAuthorByIDRequest struct {
	AuthorID string `json:"author_id"`
}

type articleResponse struct {
	DOI             string  `json:"doi"`
	Title           string  `json:"title"`
	AuthorID        string  `json:"author_id"`
	PublicationYear int     `json:"publication_year"`
	CitedBy         int     `json:"cited_by"`
	Distance        float64 `json:"distance"`
}

type profileArticleResponse struct {
	DOI             string `json:"doi"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	CitedBy         int    `json:"cited_by"`
}

type authorResponse struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	UnitID    string  `json:"unit_id,omitempty"`
	Community string  `json:"community,omitempty"`
	Score     float64 `json:"score"`
}

type searchArticlesResponse struct {
	Articles []articleResponse `json:"articles"`
	Plot     *plot.Data        `json:"plot,omitempty"`
}

type searchAuthorsResponse struct {
	Authors  []authorResponse  `json:"authors"`
	Evidence []articleResponse `json:"evidence,omitempty"`
	Plot     *plot.Data        `json:"plot,omitempty"`
}

type authorProfileResponse struct {
	ID        string                   `json:"id"`
	FirstName string                   `json:"first_name"`
	LastName  string                   `json:"last_name"`
	UnitID    string                   `json:"unit_id,omitempty"`
	Community string                   `json:"community,omitempty"`
	Articles  []profileArticleResponse `json:"articles"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func articlesToAPI(candidates []domart.Candidate) []articleResponse {
	out := make([]articleResponse, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		out[i] = articleResponse{
			DOI:             c.DOI(),
			Title:           c.Title(),
			AuthorID:        c.AuthorID(),
			PublicationYear: c.Year(),
			CitedBy:         c.CitedBy(),
			Distance:        c.Distance(),
		}
	}
	return out
}

func rankedToAPI(ranked []authoruc.Scored) []authorResponse {
	out := make([]authorResponse, len(ranked))
	for i := range ranked {
		a := &ranked[i].Author
		out[i] = authorResponse{
			ID:        a.ID(),
			FirstName: a.FirstName(),
			LastName:  a.LastName(),
			UnitID:    a.UnitID(),
			Community: a.Community(),
			Score:     ranked[i].Score,
		}
	}
	return out
}

func profileToAPI(p *authoruc.Profile) authorProfileResponse {
	a := &p.Author
	articles := make([]profileArticleResponse, len(p.Articles))
	for i := range p.Articles {
		art := &p.Articles[i]
		articles[i] = profileArticleResponse{
			DOI:             art.DOI(),
			Title:           art.Title(),
			PublicationYear: art.Year(),
			CitedBy:         art.CitedBy(),
		}
	}
	return authorProfileResponse{
		ID:        a.ID(),
		FirstName: a.FirstName(),
		LastName:  a.LastName(),
		UnitID:    a.UnitID(),
		Community: a.Community(),
		Articles:  articles,
	}
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// floatPtrOr keeps the request value (explicit zero included); an absent
// request field falls back to the configured default, and a zero config
// default means "not configured".
func floatPtrOr(p *float64, def float64) *float64 {
	if p != nil {
		return p
	}
	if def != 0 {
		return &def
	}
	return nil
}

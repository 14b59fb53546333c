// Package facultysearch is the embedded SDK: the same engine the HTTP server
// runs, wired directly against Redis for in-process use.
package facultysearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UW-Madison-DSI/faculty-search/internal/db"
	dbRedis "github.com/UW-Madison-DSI/faculty-search/internal/db/redis"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/plot"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/query"
	"github.com/UW-Madison-DSI/faculty-search/internal/projection"
	articlerepo "github.com/UW-Madison-DSI/faculty-search/internal/repository/article"
	authorrepo "github.com/UW-Madison-DSI/faculty-search/internal/repository/author"
	authoruc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/author"
	plotuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/plot"
	searchuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the faculty-search SDK entry point.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
	authorSvc *authoruc.Service
	plotSvc   *plotuc.Service
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("facultysearch: database address required (use WithRedis)")
	}
	if cfg.embedder == nil {
		return nil, errors.New("facultysearch: embedder required (use WithEmbedder)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("facultysearch: create redis store: %w", err)
	}

	timeout := cfg.readinessTimeout
	if timeout <= 0 {
		timeout = defaultReadinessTimeout
	}
	ctx := context.Background()
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("facultysearch: database not ready: %w", err)
	}

	articles := articlerepo.New(store)
	authors := authorrepo.New(store)
	emb := &embedderAdapter{inner: cfg.embedder}

	return &Client{
		store:     store,
		searchSvc: searchuc.New(articles, authors, emb),
		authorSvc: authoruc.New(authors, articles),
		plotSvc:   plotuc.New(projection.NewPCA(), authors),
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Article is one search hit.
type Article struct {
	DOI             string
	Title           string
	AuthorID        string
	PublicationYear int
	CitedBy         int
	Distance        float64
}

// Author is one ranked author.
type Author struct {
	ID        string
	FirstName string
	LastName  string
	UnitID    string
	Community string
	Score     float64
}

// Plot is the 2D projection of a search neighborhood.
type Plot = plot.Data

// ArticleSearchOptions configures SearchArticles. Zero values take defaults;
// DistanceThreshold is a pointer because an explicit 0 is meaningful.
type ArticleSearchOptions struct {
	TopK              int
	DistanceThreshold *float64
	SinceYear         int
	WithPlot          bool
}

// ArticleSearchResult holds article hits and the optional plot.
type ArticleSearchResult struct {
	Articles []Article
	Plot     *Plot
}

// SearchArticles finds the articles most similar to the query text.
func (c *Client) SearchArticles(
	ctx context.Context, text string, opts *ArticleSearchOptions,
) (*ArticleSearchResult, error) {
	if opts == nil {
		opts = &ArticleSearchOptions{}
	}

	q, err := query.NewArticles(text, opts.TopK, opts.DistanceThreshold, opts.SinceYear, opts.WithPlot)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	r, err := c.searchSvc.SearchArticles(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("search articles: %w", err)
	}

	out := &ArticleSearchResult{Articles: fromCandidates(r.Articles)}
	if opts.WithPlot {
		data, err := c.plotSvc.Assemble(ctx, q.Text(), r.QueryVector, r.PlotPool)
		if err != nil {
			return nil, fmt.Errorf("search articles: %w", err)
		}
		out.Plot = data
	}
	return out, nil
}

// AuthorSearchOptions configures SearchAuthors. Zero values take defaults.
// The threshold and gains are pointers so an explicit 0 (keep nothing, mute
// a term) is distinguishable from "use the default".
type AuthorSearchOptions struct {
	TopK              int
	N                 int // article pool retrieved for aggregation
	M                 int // max contributing articles per author
	DistanceThreshold *float64
	SinceYear         int
	Weighting         string // "similarity" or "linear" (default)
	Pow               float64
	KS                *float64
	KA                *float64
	KR                *float64
	FilterUnit        string
	WithPlot          bool
	WithEvidence      bool
}

// AuthorSearchResult holds ranked authors, optional evidence, and plot.
type AuthorSearchResult struct {
	Authors  []Author
	Evidence []Article
	Plot     *Plot
}

// SearchAuthors ranks authors by aggregated article relevance to the query.
func (c *Client) SearchAuthors(
	ctx context.Context, text string, opts *AuthorSearchOptions,
) (*AuthorSearchResult, error) {
	if opts == nil {
		opts = &AuthorSearchOptions{}
	}

	q, err := query.NewAuthors(query.AuthorsParams{
		Text:              text,
		TopK:              opts.TopK,
		PoolSize:          opts.N,
		PerAuthorCap:      opts.M,
		DistanceThreshold: opts.DistanceThreshold,
		SinceYear:         opts.SinceYear,
		Weighting:         query.Weighting(opts.Weighting),
		Pow:               opts.Pow,
		KS:                opts.KS,
		KA:                opts.KA,
		KR:                opts.KR,
		FilterUnit:        opts.FilterUnit,
		WithPlot:          opts.WithPlot,
		WithEvidence:      opts.WithEvidence,
	})
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}

	r, err := c.searchSvc.SearchAuthors(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}

	scored, err := c.authorSvc.ResolveRanked(ctx, r.Authors)
	if err != nil {
		return nil, fmt.Errorf("search authors: %w", err)
	}

	out := &AuthorSearchResult{Authors: fromScored(scored)}
	if opts.WithEvidence {
		out.Evidence = fromCandidates(r.Evidence)
	}
	if opts.WithPlot {
		data, err := c.plotSvc.Assemble(ctx, q.Text(), r.QueryVector, r.PlotPool)
		if err != nil {
			return nil, fmt.Errorf("search authors: %w", err)
		}
		out.Plot = data
	}
	return out, nil
}

// AuthorProfile is an author with their publications.
type AuthorProfile struct {
	Author   Author
	Articles []Article
}

// GetAuthor resolves an author by name, with prefix fallback for partial
// matches. sinceYear limits the attached articles (0 = no practical limit).
func (c *Client) GetAuthor(
	ctx context.Context, firstName, lastName string, sinceYear int,
) (*AuthorProfile, error) {
	p, err := c.authorSvc.GetByName(ctx, firstName, lastName, sinceYear)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}
	return fromProfile(p), nil
}

// GetAuthorByID resolves an author by identifier.
func (c *Client) GetAuthorByID(ctx context.Context, id string) (*AuthorProfile, error) {
	p, err := c.authorSvc.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get author by id: %w", err)
	}
	return fromProfile(p), nil
}

// IsNotFound reports whether err means the author does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrAuthorNotFound)
}

// IsValidation reports whether err means the request was invalid.
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

// embedderAdapter wraps public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

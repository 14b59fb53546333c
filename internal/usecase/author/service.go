// Package author implements direct author lookup: by name with fuzzy
// fallback, or by identifier.
package author

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/query"
)

// Profile is an author with their publications.
type Profile struct {
	Author   domauthor.Author
	Articles []domart.Article
}

// Scored is an author annotated with a relevance score.
type Scored struct {
	Author domauthor.Author
	Score  float64
}

// Service handles author profile lookups.
type Service struct {
	authors  Reader
	articles ArticleLister
}

// New creates an author service.
func New(authors Reader, articles ArticleLister) *Service {
	return &Service{authors: authors, articles: articles}
}

// GetByName resolves an author by name (three-tier fallback happens in the
// repository) and attaches their articles published since sinceYear.
func (s *Service) GetByName(ctx context.Context, firstName, lastName string, sinceYear int) (*Profile, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}
	if sinceYear == 0 {
		sinceYear = query.DefaultSinceYear
	}

	a, err := s.authors.GetByName(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, a, sinceYear)
}

// GetByID resolves an author by identifier and attaches all their articles.
func (s *Service) GetByID(ctx context.Context, id string) (*Profile, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: author_id must not be empty", domain.ErrValidation)
	}

	a, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.profile(ctx, a, query.DefaultSinceYear)
}

// ResolveRanked attaches author records to ranking results, preserving order.
// Entries whose author record is gone from the store are dropped: a stale
// index entry must not fail the whole search.
func (s *Service) ResolveRanked(ctx context.Context, ranked []domauthor.Ranked) ([]Scored, error) {
	out := make([]Scored, 0, len(ranked))
	for _, r := range ranked {
		a, err := s.authors.GetByID(ctx, r.ID)
		if err != nil {
			if errors.Is(err, domain.ErrAuthorNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, Scored{Author: a, Score: r.Score})
	}
	return out, nil
}

func (s *Service) profile(ctx context.Context, a domauthor.Author, sinceYear int) (*Profile, error) {
	articles, err := s.articles.ListByAuthor(ctx, a.ID(), sinceYear)
	if err != nil {
		return nil, fmt.Errorf("articles for author %s: %w", a.ID(), err)
	}
	return &Profile{Author: a, Articles: articles}, nil
}

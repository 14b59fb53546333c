package facultysearch

import (
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	authoruc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/author"
)

func fromCandidates(candidates []domart.Candidate) []Article {
	out := make([]Article, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		out[i] = Article{
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

func fromScored(scored []authoruc.Scored) []Author {
	out := make([]Author, len(scored))
	for i := range scored {
		a := &scored[i].Author
		out[i] = Author{
			ID:        a.ID(),
			FirstName: a.FirstName(),
			LastName:  a.LastName(),
			UnitID:    a.UnitID(),
			Community: a.Community(),
			Score:     scored[i].Score,
		}
	}
	return out
}

func fromProfile(p *authoruc.Profile) *AuthorProfile {
	a := &p.Author
	articles := make([]Article, len(p.Articles))
	for i := range p.Articles {
		art := &p.Articles[i]
		articles[i] = Article{
			DOI:             art.DOI(),
			Title:           art.Title(),
			AuthorID:        a.ID(),
			PublicationYear: art.Year(),
			CitedBy:         art.CitedBy(),
		}
	}
	return &AuthorProfile{
		Author: Author{
			ID:        a.ID(),
			FirstName: a.FirstName(),
			LastName:  a.LastName(),
			UnitID:    a.UnitID(),
			Community: a.Community(),
		},
		Articles: articles,
	}
}

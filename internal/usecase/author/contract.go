package author

import (
	"context"

	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
)

// Reader resolves authors from the store.
type Reader interface {
	GetByID(ctx context.Context, id string) (domauthor.Author, error)
	GetByName(ctx context.Context, firstName, lastName string) (domauthor.Author, error)
}

// ArticleLister lists an author's publications.
type ArticleLister interface {
	ListByAuthor(ctx context.Context, authorID string, sinceYear int) ([]domart.Article, error)
}

// Package author implements author lookups over the store's author index.
package author

import (
	"context"
	"errors"
	"fmt"

	"github.com/UW-Madison-DSI/faculty-search/internal/db"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
)

const (
	indexName = domain.KeyPrefix + "authors:idx"
	keyPrefix = domain.KeyPrefix + "authors:"
)

// maxUnitAuthors bounds the unit membership listing.
const maxUnitAuthors = 10000

var returnFields = []string{"id", "first_name", "last_name", "unit_id", "community"}

// store is the consumer interface for author queries.
type store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	SearchQuery(ctx context.Context, q *db.FieldQuery) (*db.SearchResult, error)
}

// Repo implements the author lookup contracts.
type Repo struct {
	store store
}

// New creates an author repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// GetByID fetches one author by identifier.
func (r *Repo) GetByID(ctx context.Context, id string) (domauthor.Author, error) {
	fields, err := r.store.HGetAll(ctx, keyPrefix+id)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domauthor.Author{}, fmt.Errorf("author %s: %w", id, domain.ErrAuthorNotFound)
		}
		return domauthor.Author{}, fmt.Errorf("get author %s: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	return authorFromFields(fields), nil
}

// GetByName resolves an author by name with a three-tier fallback:
// exact match, then prefix match on both names, then prefix match on either
// name. Each tier runs only when the previous one returned nothing. The last
// tier can match unrelated authors sharing only a first or last name; callers
// get the first hit the index returns.
func (r *Repo) GetByName(ctx context.Context, firstName, lastName string) (domauthor.Author, error) {
	first := titleCase(firstName)
	last := titleCase(lastName)

	tiers := []string{
		fmt.Sprintf("@first_name:{%s} @last_name:{%s}", escapeTag(first), escapeTag(last)),
		fmt.Sprintf("@first_name:{%s*} @last_name:{%s*}", escapeTag(first), escapeTag(last)),
		fmt.Sprintf("(@first_name:{%s*}) | (@last_name:{%s*})", escapeTag(first), escapeTag(last)),
	}

	for _, query := range tiers {
		sr, err := r.store.SearchQuery(ctx, &db.FieldQuery{
			IndexName:    indexName,
			Query:        query,
			Limit:        1,
			ReturnFields: returnFields,
		})
		if err != nil {
			return domauthor.Author{}, fmt.Errorf("author name lookup: %w: %w", domain.ErrStoreUnavailable, err)
		}
		if len(sr.Entries) > 0 {
			return authorFromFields(sr.Entries[0].Fields), nil
		}
	}

	return domauthor.Author{}, fmt.Errorf("author %s %s: %w", firstName, lastName, domain.ErrAuthorNotFound)
}

// ListIDsInUnit returns the identifiers of all authors in the given unit.
func (r *Repo) ListIDsInUnit(ctx context.Context, unitID string) (map[string]struct{}, error) {
	sr, err := r.store.SearchQuery(ctx, &db.FieldQuery{
		IndexName:    indexName,
		Query:        fmt.Sprintf("@unit_id:{%s}", escapeTag(unitID)),
		Limit:        maxUnitAuthors,
		ReturnFields: []string{"id"},
	})
	if err != nil {
		return nil, fmt.Errorf("list unit authors: %w: %w", domain.ErrStoreUnavailable, err)
	}

	ids := make(map[string]struct{}, len(sr.Entries))
	for _, entry := range sr.Entries {
		if id := entry.Fields["id"]; id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// GetNames resolves display names for the given author ids in one pipelined
// read, preserving order. Unknown ids fall back to the raw id so the
// projection never loses a point.
func (r *Repo) GetNames(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyPrefix + id
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get author names: %w: %w", domain.ErrStoreUnavailable, err)
	}

	names := make([]string, len(ids))
	for i, fields := range results {
		if len(fields) == 0 {
			names[i] = ids[i]
			continue
		}
		a := authorFromFields(fields)
		names[i] = a.DisplayName()
	}
	return names, nil
}

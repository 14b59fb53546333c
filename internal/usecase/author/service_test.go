package author

import (
	"context"
	"errors"
	"testing"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
	"github.com/UW-Madison-DSI/faculty-search/internal/domain/query"
)

// --- Mocks ---

type mockReader struct {
	authors map[string]domauthor.Author
	byName  domauthor.Author
	nameErr error
}

func (m *mockReader) GetByID(_ context.Context, id string) (domauthor.Author, error) {
	a, ok := m.authors[id]
	if !ok {
		return domauthor.Author{}, domain.ErrAuthorNotFound
	}
	return a, nil
}

func (m *mockReader) GetByName(_ context.Context, _, _ string) (domauthor.Author, error) {
	return m.byName, m.nameErr
}

type mockLister struct {
	articles      []domart.Article
	err           error
	lastAuthorID  string
	lastSinceYear int
}

func (m *mockLister) ListByAuthor(_ context.Context, authorID string, sinceYear int) ([]domart.Article, error) {
	m.lastAuthorID = authorID
	m.lastSinceYear = sinceYear
	return m.articles, m.err
}

func testAuthor(id string) domauthor.Author {
	return domauthor.New(id, "unit-1", "Ada", "Lovelace", "")
}

// --- Tests ---

func TestGetByName_ReturnsProfile(t *testing.T) {
	reader := &mockReader{byName: testAuthor("au1")}
	lister := &mockLister{articles: []domart.Article{
		domart.New("doi1", "au1", "On Computation", 1843, 1000),
	}}
	svc := New(reader, lister)

	p, err := svc.GetByName(context.Background(), "Ada", "Lovelace", 1800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Author.ID() != "au1" {
		t.Errorf("expected author au1, got %s", p.Author.ID())
	}
	if len(p.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(p.Articles))
	}
	if lister.lastAuthorID != "au1" || lister.lastSinceYear != 1800 {
		t.Errorf("unexpected article lookup: %s since %d", lister.lastAuthorID, lister.lastSinceYear)
	}
}

func TestGetByName_EmptyNameIsValidationError(t *testing.T) {
	svc := New(&mockReader{}, &mockLister{})

	for _, tc := range []struct{ first, last string }{
		{"", "Lovelace"},
		{"Ada", ""},
		{"  ", "  "},
	} {
		_, err := svc.GetByName(context.Background(), tc.first, tc.last, 0)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("(%q, %q): expected ErrValidation, got %v", tc.first, tc.last, err)
		}
	}
}

func TestGetByName_ZeroSinceYearTakesDefault(t *testing.T) {
	reader := &mockReader{byName: testAuthor("au1")}
	lister := &mockLister{}
	svc := New(reader, lister)

	if _, err := svc.GetByName(context.Background(), "Ada", "Lovelace", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.lastSinceYear != query.DefaultSinceYear {
		t.Errorf("expected since_year=%d, got %d", query.DefaultSinceYear, lister.lastSinceYear)
	}
}

func TestGetByName_NotFoundPropagates(t *testing.T) {
	reader := &mockReader{nameErr: domain.ErrAuthorNotFound}
	svc := New(reader, &mockLister{})

	_, err := svc.GetByName(context.Background(), "No", "Body", 0)
	if !errors.Is(err, domain.ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestGetByID_ReturnsProfile(t *testing.T) {
	reader := &mockReader{authors: map[string]domauthor.Author{"au1": testAuthor("au1")}}
	svc := New(reader, &mockLister{})

	p, err := svc.GetByID(context.Background(), "au1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Author.ID() != "au1" {
		t.Errorf("expected author au1, got %s", p.Author.ID())
	}
}

func TestGetByID_EmptyIDIsValidationError(t *testing.T) {
	svc := New(&mockReader{}, &mockLister{})

	_, err := svc.GetByID(context.Background(), "  ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := New(&mockReader{}, &mockLister{})

	_, err := svc.GetByID(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestResolveRanked_PreservesOrderAndScores(t *testing.T) {
	reader := &mockReader{authors: map[string]domauthor.Author{
		"au1": testAuthor("au1"),
		"au2": domauthor.New("au2", "unit-2", "Grace", "Hopper", ""),
	}}
	svc := New(reader, &mockLister{})

	scored, err := svc.ResolveRanked(context.Background(), []domauthor.Ranked{
		{ID: "au2", Score: 0.9},
		{ID: "au1", Score: 0.4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scored) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(scored))
	}
	if scored[0].Author.ID() != "au2" || scored[0].Score != 0.9 {
		t.Errorf("unexpected first entry: %+v", scored[0])
	}
	if scored[1].Author.ID() != "au1" || scored[1].Score != 0.4 {
		t.Errorf("unexpected second entry: %+v", scored[1])
	}
}

func TestResolveRanked_SkipsStaleEntries(t *testing.T) {
	reader := &mockReader{authors: map[string]domauthor.Author{"au1": testAuthor("au1")}}
	svc := New(reader, &mockLister{})

	scored, err := svc.ResolveRanked(context.Background(), []domauthor.Ranked{
		{ID: "gone", Score: 0.9},
		{ID: "au1", Score: 0.4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scored) != 1 || scored[0].Author.ID() != "au1" {
		t.Fatalf("expected stale entry dropped, got %+v", scored)
	}
}

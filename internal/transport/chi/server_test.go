package chi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
	authoruc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/author"
	healthuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/health"
	plotuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/plot"
	searchuc "github.com/UW-Madison-DSI/faculty-search/internal/usecase/search"
)

// --- Mocks ---

type stubSource struct {
	candidates []domart.Candidate
	err        error
}

func (s *stubSource) SearchSimilar(
	_ context.Context, _ []float32, _, _ int, _ bool,
) ([]domart.Candidate, error) {
	return s.candidates, s.err
}

type stubUnits struct {
	ids map[string]struct{}
}

func (s *stubUnits) ListIDsInUnit(_ context.Context, _ string) (map[string]struct{}, error) {
	return s.ids, nil
}

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}, nil
}

type stubAuthors struct {
	byID map[string]domauthor.Author
}

func (s *stubAuthors) GetByID(_ context.Context, id string) (domauthor.Author, error) {
	a, ok := s.byID[id]
	if !ok {
		return domauthor.Author{}, fmt.Errorf("author %s: %w", id, domain.ErrAuthorNotFound)
	}
	return a, nil
}

func (s *stubAuthors) GetByName(_ context.Context, firstName, lastName string) (domauthor.Author, error) {
	for _, a := range s.byID {
		if a.FirstName() == firstName && a.LastName() == lastName {
			return a, nil
		}
	}
	return domauthor.Author{}, domain.ErrAuthorNotFound
}

type stubLister struct {
	articles []domart.Article
}

func (s *stubLister) ListByAuthor(_ context.Context, _ string, _ int) ([]domart.Article, error) {
	return s.articles, nil
}

type stubProjector struct{}

func (stubProjector) Project(matrix [][]float64) ([][2]float64, error) {
	out := make([][2]float64, len(matrix))
	for i := range matrix {
		out[i] = [2]float64{float64(i), 0}
	}
	return out, nil
}

type stubNames struct{}

func (stubNames) GetNames(_ context.Context, ids []string) ([]string, error) {
	names := make([]string, len(ids))
	copy(names, ids)
	return names, nil
}

type stubPinger struct{ err error }

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

type serverFixture struct {
	source  *stubSource
	authors *stubAuthors
	pinger  *stubPinger
	embed   *stubEmbedder
	router  chi.Router
}

func vecCandidate(doi, authorID string, distance float64) domart.Candidate {
	return domart.NewCandidate(
		domart.New(doi, authorID, "title "+doi, 2020, 12),
		distance,
		[]float32{0.1, 0.2},
	)
}

func newFixture() *serverFixture {
	return newFixtureWithDefaults(SearchDefaults{})
}

func newFixtureWithDefaults(defaults SearchDefaults) *serverFixture {
	f := &serverFixture{
		source: &stubSource{},
		authors: &stubAuthors{byID: map[string]domauthor.Author{
			"au1": domauthor.New("au1", "stats", "Grace", "Hopper", ""),
			"au2": domauthor.New("au2", "cs", "Alan", "Turing", ""),
		}},
		pinger: &stubPinger{},
		embed:  &stubEmbedder{},
	}

	searchSvc := searchuc.New(f.source, f.authors2units(), f.embed)
	authorSvc := authoruc.New(f.authors, &stubLister{articles: []domart.Article{
		domart.New("doi9", "au1", "Compilers", 1952, 900),
	}})
	plotSvc := plotuc.New(stubProjector{}, stubNames{})
	healthSvc := healthuc.New(f.pinger, nil)

	server := NewServer(searchSvc, plotSvc, authorSvc, healthSvc, defaults, zap.NewNop())
	r := chi.NewRouter()
	server.Routes(r)
	f.router = r
	return f
}

func (f *serverFixture) authors2units() *stubUnits {
	return &stubUnits{ids: map[string]struct{}{"au1": {}}}
}

func (f *serverFixture) post(t *testing.T, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rr.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	var resp errorResponse
	decodeBody(t, rr, &resp)
	if resp.Code != code {
		t.Errorf("error code: got %s, want %s", resp.Code, code)
	}
}

// --- Tests ---

func TestSearchArticles_OK(t *testing.T) {
	f := newFixture()
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
		vecCandidate("doi2", "au2", 0.15),
		vecCandidate("doi3", "au2", 0.35), // beyond default threshold
	}

	rr := f.post(t, "/search_articles", `{"query": "compilers"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchArticlesResponse
	decodeBody(t, rr, &resp)

	if len(resp.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(resp.Articles))
	}
	first := resp.Articles[0]
	if first.DOI != "doi1" || first.AuthorID != "au1" || first.Distance != 0.05 {
		t.Errorf("unexpected first article: %+v", first)
	}
	if first.PublicationYear != 2020 || first.CitedBy != 12 {
		t.Errorf("unexpected article metadata: %+v", first)
	}
	if resp.Plot != nil {
		t.Error("plot must be absent without with_plot")
	}
}

func TestSearchArticles_ConfiguredThresholdDefault(t *testing.T) {
	f := newFixtureWithDefaults(SearchDefaults{DistanceThreshold: 0.5})
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
		vecCandidate("doi3", "au2", 0.35), // inside the configured threshold
	}

	rr := f.post(t, "/search_articles", `{"query": "compilers"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchArticlesResponse
	decodeBody(t, rr, &resp)

	if len(resp.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(resp.Articles))
	}

	// An explicit request threshold still overrides the configured one.
	rr = f.post(t, "/search_articles", `{"query": "compilers", "distance_threshold": 0.2}`)
	decodeBody(t, rr, &resp)
	if len(resp.Articles) != 1 {
		t.Fatalf("expected 1 article with explicit threshold, got %d", len(resp.Articles))
	}
}

func TestSearchArticles_ExplicitZeroThreshold(t *testing.T) {
	f := newFixtureWithDefaults(SearchDefaults{DistanceThreshold: 0.5})
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
	}

	// distance_threshold: 0 keeps nothing; it must not collapse to a default.
	rr := f.post(t, "/search_articles", `{"query": "compilers", "distance_threshold": 0}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchArticlesResponse
	decodeBody(t, rr, &resp)
	if len(resp.Articles) != 0 {
		t.Fatalf("expected 0 articles with threshold 0, got %d", len(resp.Articles))
	}
}

func TestSearchArticles_WithPlot(t *testing.T) {
	f := newFixture()
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
		vecCandidate("doi2", "au1", 0.10),
	}

	rr := f.post(t, "/search_articles", `{"query": "compilers", "with_plot": true}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchArticlesResponse
	decodeBody(t, rr, &resp)

	if resp.Plot == nil {
		t.Fatal("expected plot in response")
	}
	// query + 2 articles + 1 author centroid
	if len(resp.Plot.Points) != 4 {
		t.Errorf("expected 4 plot points, got %d", len(resp.Plot.Points))
	}
	if resp.Plot.Points[0].Type != "query" {
		t.Errorf("expected query point first, got %+v", resp.Plot.Points[0])
	}
}

func TestSearchArticles_InvalidJSON(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/search_articles", `{"query": `)

	assertErrorCode(t, rr, http.StatusBadRequest, codeBadRequest)
}

func TestSearchArticles_EmptyQuery(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/search_articles", `{"query": "   "}`)

	assertErrorCode(t, rr, http.StatusBadRequest, codeValidationFailed)
}

func TestSearchArticles_BadThreshold(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/search_articles", `{"query": "q", "distance_threshold": 1.5}`)

	assertErrorCode(t, rr, http.StatusBadRequest, codeValidationFailed)
}

func TestSearchArticles_EmbeddingProviderDown(t *testing.T) {
	f := newFixture()
	f.embed.err = fmt.Errorf("call provider: %w", domain.ErrEmbeddingProviderError)

	rr := f.post(t, "/search_articles", `{"query": "q"}`)

	assertErrorCode(t, rr, http.StatusBadGateway, codeEmbeddingProviderError)
}

func TestSearchArticles_StoreDown(t *testing.T) {
	f := newFixture()
	f.source.err = fmt.Errorf("ft.search: %w", domain.ErrStoreUnavailable)

	rr := f.post(t, "/search_articles", `{"query": "q"}`)

	assertErrorCode(t, rr, http.StatusServiceUnavailable, codeStoreUnavailable)
}

func TestSearchArticles_UnknownErrorIs500(t *testing.T) {
	f := newFixture()
	f.source.err = errors.New("something odd")

	rr := f.post(t, "/search_articles", `{"query": "q"}`)

	assertErrorCode(t, rr, http.StatusInternalServerError, codeInternalError)
	if bytes.Contains(rr.Body.Bytes(), []byte("something odd")) {
		t.Error("internal error detail must not leak to the client")
	}
}

func TestSearchAuthors_OK(t *testing.T) {
	f := newFixture()
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
		vecCandidate("doi2", "au1", 0.10),
		vecCandidate("doi3", "au2", 0.08),
	}

	rr := f.post(t, "/search_authors", `{"query": "computing history", "top_k": 2}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchAuthorsResponse
	decodeBody(t, rr, &resp)

	if len(resp.Authors) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(resp.Authors))
	}
	top := resp.Authors[0]
	if top.ID != "au1" {
		t.Errorf("expected au1 first (two strong articles), got %s", top.ID)
	}
	if top.FirstName != "Grace" || top.LastName != "Hopper" {
		t.Errorf("author record not attached: %+v", top)
	}
	if top.Score <= resp.Authors[1].Score {
		t.Errorf("scores not descending: %v then %v", top.Score, resp.Authors[1].Score)
	}
	if resp.Evidence != nil {
		t.Error("evidence must be absent unless requested")
	}
}

func TestSearchAuthors_WithEvidence(t *testing.T) {
	f := newFixture()
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
	}

	rr := f.post(t, "/search_authors", `{"query": "computing", "with_evidence": true}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchAuthorsResponse
	decodeBody(t, rr, &resp)

	if len(resp.Evidence) != 1 || resp.Evidence[0].DOI != "doi1" {
		t.Errorf("unexpected evidence: %+v", resp.Evidence)
	}
}

func TestSearchAuthors_UnitFilter(t *testing.T) {
	f := newFixture()
	f.source.candidates = []domart.Candidate{
		vecCandidate("doi1", "au1", 0.05),
		vecCandidate("doi3", "au2", 0.01),
	}

	// Fixture unit only contains au1.
	rr := f.post(t, "/search_authors", `{"query": "computing", "filter_unit": "stats"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp searchAuthorsResponse
	decodeBody(t, rr, &resp)

	if len(resp.Authors) != 1 || resp.Authors[0].ID != "au1" {
		t.Errorf("expected only unit member au1, got %+v", resp.Authors)
	}
}

func TestSearchAuthors_UnknownWeighting(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/search_authors", `{"query": "q", "weighting": "cosine"}`)

	assertErrorCode(t, rr, http.StatusBadRequest, codeValidationFailed)
}

func TestGetAuthor_OK(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/get_author", `{"first_name": "Grace", "last_name": "Hopper"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp authorProfileResponse
	decodeBody(t, rr, &resp)

	if resp.ID != "au1" || resp.FirstName != "Grace" {
		t.Errorf("unexpected author: %+v", resp)
	}
	if len(resp.Articles) != 1 || resp.Articles[0].DOI != "doi9" {
		t.Errorf("unexpected articles: %+v", resp.Articles)
	}
}

func TestGetAuthor_MissingName(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/get_author", `{"first_name": "Grace"}`)

	assertErrorCode(t, rr, http.StatusBadRequest, codeValidationFailed)
}

func TestGetAuthor_NotFound(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/get_author", `{"first_name": "No", "last_name": "Body"}`)

	assertErrorCode(t, rr, http.StatusNotFound, codeAuthorNotFound)
}

func TestGetAuthorByID_OK(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/get_author_by_id", `{"author_id": "au2"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	var resp authorProfileResponse
	decodeBody(t, rr, &resp)
	if resp.ID != "au2" || resp.LastName != "Turing" {
		t.Errorf("unexpected author: %+v", resp)
	}
}

func TestGetAuthorByID_NotFound(t *testing.T) {
	f := newFixture()

	rr := f.post(t, "/get_author_by_id", `{"author_id": "ghost"}`)

	assertErrorCode(t, rr, http.StatusNotFound, codeAuthorNotFound)
}

func TestHealth_OK(t *testing.T) {
	f := newFixture()

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	var resp healthResponse
	decodeBody(t, rr, &resp)
	if resp.Status != "ok" {
		t.Errorf("unexpected status %q", resp.Status)
	}
}

func TestHealth_Degraded(t *testing.T) {
	f := newFixture()
	f.pinger.err = errors.New("connection refused")

	req := httptest.NewRequest("GET", "/health", http.NoBody)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: got %d, want 503", rr.Code)
	}
}

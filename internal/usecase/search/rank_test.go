package search

import (
	"testing"

	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
)

func TestRankAuthors_SortsDescendingAndTruncates(t *testing.T) {
	scores := []domauthor.Ranked{
		{ID: "A", Score: 0.3},
		{ID: "B", Score: 0.9},
		{ID: "C", Score: 0.6},
	}

	ranked := rankAuthors(scores, 2, nil)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(ranked))
	}
	if ranked[0].ID != "B" || ranked[1].ID != "C" {
		t.Errorf("expected [B C], got [%s %s]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankAuthors_UnitFilterBeforeTruncation(t *testing.T) {
	// The top scorer is outside the unit. Filtering must happen before the
	// top-k cut so unit members fill all available slots.
	scores := []domauthor.Ranked{
		{ID: "outsider", Score: 0.9},
		{ID: "A", Score: 0.5},
		{ID: "B", Score: 0.4},
	}
	unit := map[string]struct{}{"A": {}, "B": {}}

	ranked := rankAuthors(scores, 2, unit)

	if len(ranked) != 2 {
		t.Fatalf("expected 2 authors, got %d", len(ranked))
	}
	if ranked[0].ID != "A" || ranked[1].ID != "B" {
		t.Errorf("expected [A B], got [%s %s]", ranked[0].ID, ranked[1].ID)
	}
}

func TestRankAuthors_StableOnEqualScores(t *testing.T) {
	// Equal scores keep aggregation order, which follows first appearance
	// in the candidate list.
	scores := []domauthor.Ranked{
		{ID: "first", Score: 0.5},
		{ID: "second", Score: 0.5},
		{ID: "third", Score: 0.5},
	}

	ranked := rankAuthors(scores, 3, nil)

	for i, want := range []string{"first", "second", "third"} {
		if ranked[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, ranked[i].ID)
		}
	}
}

func TestRankAuthors_FewerThanTopK(t *testing.T) {
	scores := []domauthor.Ranked{
		{ID: "A", Score: 0.5},
	}

	ranked := rankAuthors(scores, 10, nil)

	if len(ranked) != 1 {
		t.Fatalf("expected 1 author, got %d", len(ranked))
	}
}

func TestRankAuthors_EmptyUnit(t *testing.T) {
	scores := []domauthor.Ranked{
		{ID: "A", Score: 0.5},
	}

	ranked := rankAuthors(scores, 10, map[string]struct{}{})

	if len(ranked) != 0 {
		t.Fatalf("expected no authors, got %d", len(ranked))
	}
}

func TestRankAuthors_DoesNotMutateInput(t *testing.T) {
	scores := []domauthor.Ranked{
		{ID: "A", Score: 0.3},
		{ID: "B", Score: 0.9},
	}

	_ = rankAuthors(scores, 1, nil)

	if scores[0].ID != "A" || scores[1].ID != "B" {
		t.Error("input slice was reordered")
	}
}

package article

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/UW-Madison-DSI/faculty-search/internal/db"
)

func entryWithScore(score float64) db.SearchEntry {
	return db.SearchEntry{
		Key:   "scholar:articles:doi1",
		Score: score,
		Fields: map[string]string{
			"doi":              "doi1",
			"author_id":        "au1",
			"title":            "A Study",
			"publication_year": "2021",
			"cited_by":         "42",
		},
	}
}

func TestCandidateFromEntry(t *testing.T) {
	c := candidateFromEntry(entryWithScore(0.15), false)

	if c.DOI() != "doi1" || c.AuthorID() != "au1" || c.Title() != "A Study" {
		t.Errorf("unexpected article fields: %s %s %s", c.DOI(), c.AuthorID(), c.Title())
	}
	if c.Year() != 2021 || c.CitedBy() != 42 {
		t.Errorf("unexpected numeric fields: %d %d", c.Year(), c.CitedBy())
	}
	if c.Distance() != 0.15 {
		t.Errorf("unexpected distance %v", c.Distance())
	}
	if c.Vector() != nil {
		t.Error("vector must be nil when not requested")
	}
}

func TestCandidateFromEntry_ClampsDistance(t *testing.T) {
	// Floating point noise can push 1 - inner_product slightly outside [0, 1].
	low := candidateFromEntry(entryWithScore(-0.0001), false)
	if d := low.Distance(); d != 0 {
		t.Errorf("expected clamp to 0, got %v", d)
	}
	high := candidateFromEntry(entryWithScore(1.0001), false)
	if d := high.Distance(); d != 1 {
		t.Errorf("expected clamp to 1, got %v", d)
	}
}

func TestCandidateFromEntry_WithVector(t *testing.T) {
	want := []float32{0.25, -1.5, 3.0}
	buf := make([]byte, 4*len(want))
	for i, f := range want {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	entry := entryWithScore(0.1)
	entry.Fields["vector"] = string(buf)

	c := candidateFromEntry(entry, true)

	vec := c.Vector()
	if len(vec) != len(want) {
		t.Fatalf("expected %d dims, got %d", len(want), len(vec))
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Errorf("dim %d: expected %v, got %v", i, want[i], vec[i])
		}
	}
}

func TestBytesToVector_RejectsTruncatedBlob(t *testing.T) {
	if v := bytesToVector("abc"); v != nil {
		t.Errorf("expected nil for truncated blob, got %v", v)
	}
	if v := bytesToVector(""); v != nil {
		t.Errorf("expected nil for empty blob, got %v", v)
	}
}

func TestEscapeTag(t *testing.T) {
	got := escapeTag("doi:10.1234/abc-def")
	want := `doi\:10\.1234\/abc\-def`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

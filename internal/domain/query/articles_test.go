package query

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/UW-Madison-DSI/faculty-search/internal/domain"
)

func fptr(v float64) *float64 { return &v }

func TestNewArticles_Defaults(t *testing.T) {
	q, err := NewArticles("  transformers  ", 0, nil, 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Text() != "transformers" {
		t.Errorf("expected trimmed text, got %q", q.Text())
	}
	if q.TopK() != DefaultTopK {
		t.Errorf("expected top_k=%d, got %d", DefaultTopK, q.TopK())
	}
	if q.DistanceThreshold() != DefaultDistanceThreshold {
		t.Errorf("expected threshold=%v, got %v", DefaultDistanceThreshold, q.DistanceThreshold())
	}
	if q.SinceYear() != DefaultSinceYear {
		t.Errorf("expected since_year=%d, got %d", DefaultSinceYear, q.SinceYear())
	}
}

func TestNewArticles_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		topK      int
		threshold *float64
		sinceYear int
	}{
		{"empty text", "", 3, nil, 0},
		{"blank text", "   ", 3, nil, 0},
		{"text too long", strings.Repeat("x", MaxQueryLength+1), 3, nil, 0},
		{"negative top_k", "q", -1, nil, 0},
		{"negative threshold", "q", 3, fptr(-0.1), 0},
		{"threshold above one", "q", 3, fptr(1.5), 0},
		{"future since_year", "q", 3, nil, time.Now().Year() + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewArticles(tt.text, tt.topK, tt.threshold, tt.sinceYear, false)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestNewArticles_ExplicitValues(t *testing.T) {
	q, err := NewArticles("climate", 10, fptr(0.5), 2015, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.TopK() != 10 || q.DistanceThreshold() != 0.5 || q.SinceYear() != 2015 {
		t.Errorf("explicit values not retained: %d %v %d", q.TopK(), q.DistanceThreshold(), q.SinceYear())
	}
	if !q.WithPlot() {
		t.Error("with_plot not retained")
	}
}

func TestNewArticles_ExplicitZeroThreshold(t *testing.T) {
	// 0 is a legal threshold (keep nothing); only nil falls back to the default.
	q, err := NewArticles("climate", 0, fptr(0), 0, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.DistanceThreshold() != 0 {
		t.Errorf("explicit threshold 0 became %v", q.DistanceThreshold())
	}
}

package article

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/UW-Madison-DSI/faculty-search/internal/db"
	domart "github.com/UW-Madison-DSI/faculty-search/internal/domain/article"
)

// candidateFromEntry converts one KNN hit into a domain candidate.
// The index reports distance = 1 - inner_product; embeddings are normalized,
// so the value is clamped into [0, 1].
func candidateFromEntry(entry db.SearchEntry, withVector bool) domart.Candidate {
	a := articleFromFields(entry.Fields)

	distance := entry.Score
	if distance < 0 {
		distance = 0
	}
	if distance > 1 {
		distance = 1
	}

	var vector []float32
	if withVector {
		vector = bytesToVector(entry.Fields["vector"])
	}

	return domart.NewCandidate(a, distance, vector)
}

// articleFromFields converts raw hash fields into a domain article.
func articleFromFields(fields map[string]string) domart.Article {
	year, _ := strconv.Atoi(fields["publication_year"])
	citedBy, _ := strconv.Atoi(fields["cited_by"])
	return domart.New(fields["doi"], fields["author_id"], fields["title"], year, citedBy)
}

// bytesToVector deserializes a little-endian binary blob to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b) == 0 || len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// escapeTag escapes characters with query syntax meaning inside a TAG match.
func escapeTag(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case ',', '.', '<', '>', '{', '}', '[', ']', '"', '\'', ':', ';',
			'!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '-', '+',
			'=', '~', '|', '/', '\\', ' ':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

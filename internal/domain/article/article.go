// Package article holds the article value types shared between layers.
package article

// Article is a read-only view of one publication in the store.
type Article struct {
	doi      string
	authorID string
	title    string
	year     int
	citedBy  int
}

// New creates an article.
func New(doi, authorID, title string, year, citedBy int) Article {
	return Article{doi: doi, authorID: authorID, title: title, year: year, citedBy: citedBy}
}

// DOI returns the article identifier.
func (a *Article) DOI() string { return a.doi }

// AuthorID returns the owning author identifier.
func (a *Article) AuthorID() string { return a.authorID }

// Title returns the article title.
func (a *Article) Title() string { return a.title }

// Year returns the publication year.
func (a *Article) Year() int { return a.year }

// CitedBy returns the citation count.
func (a *Article) CitedBy() int { return a.citedBy }

// Candidate is an article annotated with its query distance. The distance is
// 1 - inner_product on normalized embeddings, so 0 means identical and values
// grow with dissimilarity. Candidates live for a single search call.
type Candidate struct {
	Article
	distance float64
	vector   []float32
}

// NewCandidate creates a search candidate. vector may be nil when the caller
// did not request embeddings.
func NewCandidate(a Article, distance float64, vector []float32) Candidate {
	return Candidate{Article: a, distance: distance, vector: vector}
}

// Distance returns the query distance in [0, 1].
func (c *Candidate) Distance() float64 { return c.distance }

// Vector returns the article embedding, or nil when not retrieved.
func (c *Candidate) Vector() []float32 { return c.vector }

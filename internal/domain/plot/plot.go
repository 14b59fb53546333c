// Package plot holds the 2D projection output types.
package plot

// PointType tags a projected point for rendering.
type PointType string

const (
	// TypeQuery marks the query point (always row 0 of the projection batch).
	TypeQuery PointType = "query"
	// TypeAuthor marks an author centroid point.
	TypeAuthor PointType = "author"
	// TypeArticle marks an article point.
	TypeArticle PointType = "article"
)

// Point is one plot-ready coordinate with its metadata.
// ParentID groups articles under their author; the query point has no parent.
type Point struct {
	ID       string    `json:"id"`
	ParentID string    `json:"parent_id,omitempty"`
	Label    string    `json:"label"`
	Type     PointType `json:"type"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
}

// Data is the full plot payload for one visualization request.
// Coordinates are only comparable within the same batch: reprojecting with a
// different candidate set yields a different embedding of the plane.
type Data struct {
	Points []Point `json:"points"`
}

package search

import (
	"sort"

	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
)

// rankAuthors sorts scores descending and truncates to topK.
//
// unitIDs, when non-nil, restricts the ranking to members of that set BEFORE
// truncation: a filtered-out author must not consume a top-k slot. Sorting is
// stable, so equal scores keep their aggregation (first-seen) order. Fewer
// than topK survivors is fine; all of them are returned.
func rankAuthors(scores []domauthor.Ranked, topK int, unitIDs map[string]struct{}) []domauthor.Ranked {
	ranked := make([]domauthor.Ranked, 0, len(scores))
	for _, s := range scores {
		if unitIDs != nil {
			if _, ok := unitIDs[s.ID]; !ok {
				continue
			}
		}
		ranked = append(ranked, s)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

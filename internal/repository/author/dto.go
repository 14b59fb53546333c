package author

import (
	"strings"

	domauthor "github.com/UW-Madison-DSI/faculty-search/internal/domain/author"
)

// authorFromFields converts raw hash fields into a domain author.
func authorFromFields(fields map[string]string) domauthor.Author {
	return domauthor.New(
		fields["id"],
		fields["unit_id"],
		fields["first_name"],
		fields["last_name"],
		fields["community"],
	)
}

// titleCase uppercases the first letter of each space-separated part, matching
// how names are stored in the index.
func titleCase(s string) string {
	parts := strings.Fields(strings.TrimSpace(s))
	for i, p := range parts {
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, " ")
}

// escapeTag escapes characters with query syntax meaning inside a TAG match.
func escapeTag(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case ',', '.', '<', '>', '{', '}', '[', ']', '"', '\'', ':', ';',
			'!', '@', '#', '$', '%', '^', '&', '(', ')', '-', '+',
			'=', '~', '|', '/', '\\', ' ':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

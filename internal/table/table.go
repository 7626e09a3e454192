package table

import (
	"regexp"
	"strings"
)

// Table represents one stored chord table in the library.
type Table struct {
	// ID is a ULID that uniquely identifies this table
	ID string

	// NameRaw is the original name as provided by the user
	NameRaw string

	// NameNorm is the normalized name (lowercased, trimmed, collapsed spaces)
	NameNorm string

	// Source records where the table came from (import file path), informational
	Source string

	// ChordCount is the number of chord rows stored for this table
	ChordCount int

	// CreatedAt is the Unix timestamp when the table was imported
	CreatedAt int64

	// UpdatedAt is the Unix timestamp when the table was last replaced
	UpdatedAt int64

	// DeletedAt is the Unix timestamp for soft delete (nullable)
	DeletedAt *int64
}

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize trims, lowercases, and collapses internal whitespace. Table
// names are unique by their normalized form.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Source identifies where a lookup result came from.
type Source string

const (
	SourceCache      Source = "cache"      // local Redis cache
	SourceProxy      Source = "proxy"      // secondary caching endpoint
	SourceDictionary Source = "dictionary" // primary dictionary endpoint
)

// Result is the outcome of a single lookup. Zero candidates is a
// legitimate result, not an error.
type Result struct {
	Query      string    `json:"query"`
	Candidates []string  `json:"candidates"`
	Source     Source    `json:"source"`
	FetchedAt  time.Time `json:"fetched_at"`
}

// NormalizeQuery folds a raw user query into its canonical cache form:
// trimmed, lowercased, inner whitespace collapsed to single spaces.
// Diacritics are kept as-is; Dutch answer words carry them.
func NormalizeQuery(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// ValidateQuery checks a normalized query against the configured maximum
// length and the allowed character set: letters, space, hyphen, apostrophe
// and the crossword wildcards '?' and '.'. A failure here means no network
// call may be made for this query.
func ValidateQuery(query string, maxLen int) error {
	if query == "" {
		return ErrQueryEmpty
	}
	if utf8.RuneCountInString(query) > maxLen {
		return ErrQueryTooLong
	}
	for _, r := range query {
		if unicode.IsLetter(r) {
			continue
		}
		switch r {
		case ' ', '-', '\'', '?', '.':
			continue
		}
		return ErrQueryInvalid
	}
	return nil
}

package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/puzzelhulp/woordzoeker-backend/internal/lookup/domain"
)

// The dictionary renders answers as anchors inside a results list or a
// results table, depending on the page variant.
const candidateSelector = "ul.results li a, table.results td a"

// ParseCandidates extracts the candidate answer words from a dictionary
// result page, in page order, exact repeats removed. A page that parses
// but has no results container at all is treated as a shape mismatch; a
// page with an empty container is a legitimate zero-match result.
func ParseCandidates(body io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadUpstreamResponse, err)
	}

	// Strip non-content noise before selecting anything.
	doc.Find("script, style, noscript, nav, header, footer, aside").Remove()

	if doc.Find("ul.results, table.results").Length() == 0 {
		return nil, fmt.Errorf("%w: no results container in page", domain.ErrBadUpstreamResponse)
	}

	seen := make(map[string]struct{})
	candidates := []string{}
	doc.Find(candidateSelector).Each(func(_ int, s *goquery.Selection) {
		word := normalizeWhitespace(s.Text())
		if word == "" {
			return
		}
		if _, dup := seen[word]; dup {
			return
		}
		seen[word] = struct{}{}
		candidates = append(candidates, word)
	})

	return candidates, nil
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

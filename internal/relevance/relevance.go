// Package relevance decides whether a feed item is about the club.
package relevance

import "strings"

// Filter applies a two-tier relevance policy: items from trusted
// single-topic sources always pass; everything else must mention at least
// one primary keyword in its title or description.
type Filter struct {
	keywords       []string
	trustedSources []string
}

// NewFilter builds a filter from lowercased keyword and source lists.
func NewFilter(keywords, trustedSources []string) *Filter {
	return &Filter{
		keywords:       lowerAll(keywords),
		trustedSources: lowerAll(trustedSources),
	}
}

// IsTrustedSource reports whether sourceName matches the single-topic
// allow-list. Matching is by substring so configured fragments such as
// "spurs-web" cover the full source name.
func (f *Filter) IsTrustedSource(sourceName string) bool {
	name := strings.ToLower(sourceName)
	for _, trusted := range f.trustedSources {
		if strings.Contains(name, trusted) {
			return true
		}
	}
	return false
}

// IsRelevant gates a candidate item. Keyword matching is plain substring
// search over the combined lowercased title and description, not
// word-boundary: precision over recall for generic feeds, everything
// accepted from trusted sources.
func (f *Filter) IsRelevant(title, description, sourceName string) bool {
	if f.IsTrustedSource(sourceName) {
		return true
	}

	text := strings.ToLower(title + " " + description)
	for _, keyword := range f.keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(v)))
	}
	return out
}

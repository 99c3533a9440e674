// File path: internal/textnorm/keywords.go
package textnorm

import (
	"strings"
	"unicode/utf8"
)

// stopwords holds collection-domain vocabulary and English function words
// that alone never make a query searchable.
var stopwords = map[string]struct{}{
	// Domain
	"hadith": {}, "hadiths": {}, "sahih": {}, "bukhari": {}, "muslim": {},
	"sunan": {}, "dawud": {}, "tirmidhi": {}, "nasai": {}, "majah": {},
	"malik": {}, "muwatta": {}, "ahmad": {}, "musnad": {}, "darimi": {},
	"narrated": {}, "prophet": {}, "messenger": {}, "allah": {}, "said": {},
	"reported": {}, "saying": {}, "about": {},
	// Function words
	"the": {}, "and": {}, "for": {}, "that": {}, "this": {}, "with": {},
	"from": {}, "was": {}, "were": {}, "are": {}, "his": {}, "her": {},
	"him": {}, "who": {}, "what": {}, "which": {}, "when": {}, "where": {},
	"has": {}, "have": {}, "had": {}, "not": {}, "but": {}, "you": {},
	"your": {}, "they": {}, "them": {}, "there": {}, "their": {}, "then": {},
	"any": {}, "all": {}, "one": {}, "out": {}, "into": {}, "upon": {},
	"unto": {}, "will": {}, "shall": {}, "would": {}, "can": {}, "did": {},
	"does": {}, "its": {}, "our": {},
}

// IsStopword reports whether the lowercase token carries no search value.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// ExtractKeywords returns the lowercase tokens of query longer than two runes
// that are not stop words, in query order.
func ExtractKeywords(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	out := make([]string, 0, len(fields))
	for _, token := range fields {
		if utf8.RuneCountInString(token) <= 2 || IsStopword(token) {
			continue
		}
		out = append(out, token)
	}
	return out
}

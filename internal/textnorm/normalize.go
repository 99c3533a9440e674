// File path: internal/textnorm/normalize.go

// Package textnorm prepares hadith text and user queries for matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// arabicMarks covers the Arabic harakat, tanwin, shadda, sukun and the
// extended combining marks up to U+065F.
var arabicMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x064B, Hi: 0x065F, Stride: 1}},
}

// punctuation lists every rune removed before matching, including the
// Arabic comma, semicolon and question mark.
const punctuation = ".,/#!$%^&*;:{}=-_`~()\"'?[]<>|\\،؛؟"

func stripped(r rune) bool {
	return unicode.Is(arabicMarks, r) || strings.ContainsRune(punctuation, r)
}

// Normalize lowercases text, drops Arabic diacritics and punctuation and
// collapses whitespace. Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(runes.Remove(runes.Predicate(stripped)), runes.Map(unicode.ToLower))
	out, _, err := transform.String(t, text)
	if err != nil {
		// Transformers above never fail on valid input; degrade to the raw text.
		out = strings.ToLower(text)
	}
	return strings.Join(strings.Fields(out), " ")
}

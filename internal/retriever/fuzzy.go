// File path: internal/retriever/fuzzy.go
package retriever

import (
	"strings"
)

const (
	// chunkRunes bounds the pattern length scored in one pass; longer
	// patterns are scored chunk by chunk and averaged.
	chunkRunes = 32
	// maxPatternRunes truncates very long queries before matching.
	maxPatternRunes = 128
	// maxTokens disables per-word scoring for long queries.
	maxTokens = 8
)

type matcher struct {
	threshold float64
	chunks    [][]rune
	tokens    [][]rune
}

func newMatcher(pattern string, threshold float64) *matcher {
	runes := []rune(pattern)
	if len(runes) > maxPatternRunes {
		runes = runes[:maxPatternRunes]
	}
	m := &matcher{threshold: threshold}
	for start := 0; start < len(runes); start += chunkRunes {
		end := start + chunkRunes
		if end > len(runes) {
			end = len(runes)
		}
		m.chunks = append(m.chunks, runes[start:end])
	}
	words := strings.Fields(string(runes))
	if len(words) > 1 && len(words) <= maxTokens {
		for _, w := range words {
			m.tokens = append(m.tokens, []rune(w))
		}
	}
	return m
}

// score returns the best score of text against the pattern and whether it
// is within the threshold. 0 is a perfect match; location in text does not
// matter.
func (m *matcher) score(text []rune) (float64, bool) {
	if len(m.chunks) == 0 {
		return 1, false
	}
	best := 1.0
	matched := false

	total := 0.0
	for _, chunk := range m.chunks {
		total += patternScore(chunk, text)
	}
	if whole := total / float64(len(m.chunks)); whole <= m.threshold {
		best, matched = whole, true
	}

	if len(m.tokens) > 0 {
		sum := 0.0
		all := true
		for _, tok := range m.tokens {
			s := patternScore(tok, text)
			if s > m.threshold {
				all = false
				break
			}
			sum += s
		}
		if all {
			if tokenScore := sum / float64(len(m.tokens)); !matched || tokenScore < best {
				best, matched = tokenScore, true
			}
		}
	}
	return best, matched
}

func patternScore(pattern, text []rune) float64 {
	if len(pattern) == 0 {
		return 0
	}
	return float64(substringDistance(pattern, text)) / float64(len(pattern))
}

// substringDistance is the minimum edit distance between pattern and any
// substring of text (semi-global alignment: leading and trailing text is
// free).
func substringDistance(pattern, text []rune) int {
	m := len(pattern)
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	best := m
	for _, tc := range text {
		cur[0] = 0
		for i := 1; i <= m; i++ {
			cost := prev[i-1]
			if pattern[i-1] != tc {
				cost++
			}
			if del := prev[i] + 1; del < cost {
				cost = del
			}
			if ins := cur[i-1] + 1; ins < cost {
				cost = ins
			}
			cur[i] = cost
		}
		if cur[m] < best {
			best = cur[m]
			if best == 0 {
				return 0
			}
		}
		prev, cur = cur, prev
	}
	return best
}

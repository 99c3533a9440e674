// File path: internal/commentary/parse.go
package commentary

import (
	"regexp"
	"strings"
)

const (
	NoCommentary = "No commentary."
	NoChain      = "No chain."
	NoEvaluation = "No evaluation."

	// SoundByDefault is forced into the evaluation of the two Sahih
	// collections.
	SoundByDefault = "Chain is sound and reliable by default."
)

type section int

const (
	sectionCommentary section = iota
	sectionChain
	sectionEvaluation
)

// sectionLabel matches a label at the start of a line in any of the shapes
// models tend to emit: "Commentary:", "**Commentary:**", "## Commentary" on
// its own line and so on.
var sectionLabel = regexp.MustCompile(`(?im)^[ \t]*(?:#{1,6}[ \t]*)?(?:\*\*)?(commentary|chain of narrators|evaluation(?: of (?:the )?hadith)?)(?:\*\*)?[ \t]*(?::(?:\*\*)?|\r?$)`)

func sectionOf(label string) section {
	switch strings.ToLower(label) {
	case "commentary":
		return sectionCommentary
	case "chain of narrators":
		return sectionChain
	default:
		return sectionEvaluation
	}
}

// ParseSections splits free model text into the three commentary fields.
// A section starts at the first label of its kind and runs until a label
// of a kind not seen yet; repeated labels stay part of the running text.
// Sections that are absent or empty get their placeholder.
func ParseSections(text string) Result {
	type start struct {
		kind      section
		from, end int
	}
	var starts []start
	seen := map[section]bool{}
	for _, loc := range sectionLabel.FindAllStringSubmatchIndex(text, -1) {
		kind := sectionOf(text[loc[2]:loc[3]])
		if seen[kind] {
			continue
		}
		seen[kind] = true
		starts = append(starts, start{kind: kind, from: loc[0], end: loc[1]})
	}

	found := map[section]string{}
	for i, st := range starts {
		stop := len(text)
		if i+1 < len(starts) {
			stop = starts[i+1].from
		}
		found[st.kind] = cleanSection(text[st.end:stop])
	}
	return Result{
		Commentary: orPlaceholder(found[sectionCommentary], NoCommentary),
		Chain:      orPlaceholder(found[sectionChain], NoChain),
		Evaluation: orPlaceholder(found[sectionEvaluation], NoEvaluation),
	}
}

func cleanSection(s string) string {
	s = strings.TrimLeft(s, ": \t\r\n")
	return strings.TrimSpace(s)
}

func orPlaceholder(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// applySoundDefault appends SoundByDefault as its own line unless the
// evaluation already carries it. Extra copies after the first are dropped.
func applySoundDefault(evaluation string) string {
	evaluation = strings.TrimSpace(evaluation)
	if evaluation == "" || evaluation == NoEvaluation {
		return SoundByDefault
	}
	i := strings.Index(evaluation, SoundByDefault)
	if i < 0 {
		return evaluation + "\n" + SoundByDefault
	}
	head := evaluation[:i+len(SoundByDefault)]
	tail := strings.ReplaceAll(evaluation[i+len(SoundByDefault):], SoundByDefault, "")
	return strings.TrimSpace(head + tail)
}

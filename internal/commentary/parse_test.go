// File path: internal/commentary/parse_test.go
package commentary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Result
	}{
		{
			name: "plain labels",
			text: "Commentary: Intentions matter.\nChain of Narrators: Umar.\nEvaluation of Hadith: Sound.",
			want: Result{Commentary: "Intentions matter.", Chain: "Umar.", Evaluation: "Sound."},
		},
		{
			name: "markdown headings",
			text: "## Commentary\nIntentions matter.\n\n## Chain of Narrators\nUmar ibn al-Khattab\n\n## Evaluation of the Hadith\nSound.",
			want: Result{Commentary: "Intentions matter.", Chain: "Umar ibn al-Khattab", Evaluation: "Sound."},
		},
		{
			name: "mixed case labels",
			text: "COMMENTARY: a.\r\n  chain of narrators: b.\r\nEVALUATION: c.",
			want: Result{Commentary: "a.", Chain: "b.", Evaluation: "c."},
		},
		{
			name: "missing chain",
			text: "**Commentary:** only this.\n**Evaluation:** weak.",
			want: Result{Commentary: "only this.", Chain: NoChain, Evaluation: "weak."},
		},
		{
			name: "no labels",
			text: "The model ignored the format.",
			want: Result{Commentary: NoCommentary, Chain: NoChain, Evaluation: NoEvaluation},
		},
		{
			name: "empty section",
			text: "Commentary:\nChain of Narrators: x\nEvaluation of Hadith:",
			want: Result{Commentary: NoCommentary, Chain: "x", Evaluation: NoEvaluation},
		},
		{
			name: "label word inside prose",
			text: "Commentary:\nIbn Hajar's commentary: Fath al-Bari explains the wording.\nChain of Narrators: Ali.\nEvaluation of Hadith: Sound.",
			want: Result{
				Commentary: "Ibn Hajar's commentary: Fath al-Bari explains the wording.",
				Chain:      "Ali.",
				Evaluation: "Sound.",
			},
		},
		{
			name: "label word at end of prose line",
			text: "Commentary: The wording needs careful evaluation\nof its wording.\nChain of Narrators: Ali.\nEvaluation of Hadith:\nSound.",
			want: Result{
				Commentary: "The wording needs careful evaluation\nof its wording.",
				Chain:      "Ali.",
				Evaluation: "Sound.",
			},
		},
		{
			name: "repeated label stays in section",
			text: "Commentary: first.\nCommentary: second.\nChain of Narrators: Anas.\nEvaluation: good.",
			want: Result{Commentary: "first.\nCommentary: second.", Chain: "Anas.", Evaluation: "good."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSections(tt.text))
		})
	}
}

func TestApplySoundDefault(t *testing.T) {
	cases := []struct{ in, want string }{
		{in: "Sound.", want: "Sound.\n" + SoundByDefault},
		{in: "", want: SoundByDefault},
		{in: NoEvaluation, want: SoundByDefault},
		{in: SoundByDefault, want: SoundByDefault},
		{in: "Narrators ok. " + SoundByDefault, want: "Narrators ok. " + SoundByDefault},
		{in: SoundByDefault + " x " + SoundByDefault, want: SoundByDefault + " x"},
	}
	for _, tc := range cases {
		got := applySoundDefault(tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
		assert.Equal(t, 1, strings.Count(got, SoundByDefault), "input %q", tc.in)
	}
}

func TestSoundByDefaultCollections(t *testing.T) {
	for _, c := range []string{"bukhari", "Sahih al-Bukhari", "MUSLIM", "Sahih Muslim"} {
		assert.True(t, soundByDefault(c), c)
	}
	for _, c := range []string{"Sunan Abi Dawud", "tirmidhi", "unknown"} {
		assert.False(t, soundByDefault(c), c)
	}
}

func TestCondenseEnglish(t *testing.T) {
	assert.Equal(t, "a b c", condenseEnglish("a\nb\r\nc"))
	assert.Equal(t, strings.Repeat("ب", 500)+"...", condenseEnglish(strings.Repeat("ب", 501)))
	exact := strings.Repeat("x", 500)
	assert.Equal(t, exact, condenseEnglish(exact))
}

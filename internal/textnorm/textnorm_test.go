// File path: internal/textnorm/textnorm_test.go
package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "case and punctuation", in: "The Moon, was SPLIT!", want: "the moon was split"},
		{name: "whitespace runs", in: "  actions \t\t are   by\nintentions  ", want: "actions are by intentions"},
		{name: "arabic diacritics", in: "إِنَّمَا الأَعْمَالُ بِالنِّيَّاتِ", want: "إنما الأعمال بالنيات"},
		{name: "arabic punctuation", in: "قال، نعم؟", want: "قال نعم"},
		{name: "brackets and quotes", in: `"[Bukhari] (1)"`, want: "bukhari 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"Narrated 'Umar bin Al-Khattab: I heard Allah's Messenger (ﷺ) saying...",
		"بِسْمِ اللَّهِ الرَّحْمَنِ الرَّحِيمِ",
		"  --  ;;  ",
		"Aًb",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeStripsEveryListedRune(t *testing.T) {
	var b strings.Builder
	b.WriteString("x")
	for r := rune(0x064B); r <= 0x065F; r++ {
		b.WriteRune(r)
	}
	b.WriteString(punctuation)
	b.WriteString("y")
	assert.Equal(t, "xy", Normalize(b.String()))
}

func TestExtractKeywords(t *testing.T) {
	assert.Equal(t, []string{"moon", "split"}, ExtractKeywords("The MOON split"))
	assert.Equal(t, []string{"intentions"}, ExtractKeywords("by intentions"))
	assert.Empty(t, ExtractKeywords("the a an"))
	assert.Empty(t, ExtractKeywords("Sahih Bukhari hadith about"))
	assert.Empty(t, ExtractKeywords("   "))
}

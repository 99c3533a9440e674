// File path: internal/retriever/retriever_test.go
package retriever

import (
	"fmt"
	"testing"

	"github.com/hadithlens/hadithlens/internal/corpus"
)

func sampleRecords() []corpus.Record {
	return []corpus.Record{
		{Collection: corpus.Bukhari, Arabic: "انشق القمر", English: "Narrated Anas: The people of Makkah asked for a sign, and the moon was split in two.", Number: "3637", Reference: "Sahih al-Bukhari 3637"},
		{Collection: corpus.Bukhari, Arabic: "إنما الأعمال بالنيات", English: "Actions are judged by intentions.", Number: "1", Reference: "Sahih al-Bukhari 1"},
		{Collection: corpus.Muslim, Arabic: "الدين النصيحة", English: "The religion is sincere advice.", Number: "55", Reference: "Sahih Muslim 55"},
		{Collection: corpus.Tirmidhi, English: "", Number: corpus.UnknownNumber, Reference: "Jami at-Tirmidhi Unknown"},
	}
}

func TestSearchBeforeBuildReturnsNothing(t *testing.T) {
	r := New()
	if r.Ready() {
		t.Fatalf("expected retriever not ready")
	}
	if got := r.Search("moon split"); got != nil {
		t.Fatalf("expected nil matches, got %+v", got)
	}
}

func TestBuildDocumentComposite(t *testing.T) {
	doc := BuildDocument(sampleRecords()[1])
	if doc.Text != "actions are judged by intentions sahih al-bukhari 1" {
		t.Fatalf("unexpected composite: %q", doc.Text)
	}
	empty := BuildDocument(sampleRecords()[3])
	if empty.Text != "jami at-tirmidhi Unknown" {
		t.Fatalf("unexpected composite for empty english: %q", empty.Text)
	}
}

func TestSearchFindsMoonSplit(t *testing.T) {
	r := New()
	r.Rebuild(sampleRecords())
	matches := r.Search("moon split")
	if len(matches) == 0 {
		t.Fatalf("expected a match")
	}
	if matches[0].Record.Reference != "Sahih al-Bukhari 3637" {
		t.Fatalf("unexpected best match: %+v", matches[0])
	}
	if matches[0].Score != 0 {
		t.Fatalf("expected perfect token score, got %v", matches[0].Score)
	}
}

func TestSearchToleratesTypos(t *testing.T) {
	r := New()
	r.Rebuild(sampleRecords())
	matches := r.Search("intentons")
	if len(matches) == 0 || matches[0].Record.Number != "1" {
		t.Fatalf("expected intentions hadith, got %+v", matches)
	}
}

func TestSearchRejectsUnrelatedQuery(t *testing.T) {
	r := New()
	r.Rebuild(sampleRecords())
	if matches := r.Search("xylophone quasar"); len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestStricterThresholdRejectsTypos(t *testing.T) {
	r := New(WithThreshold(0.05))
	r.Rebuild(sampleRecords())
	if matches := r.Search("intentons"); len(matches) != 0 {
		t.Fatalf("expected strict threshold to reject typo, got %+v", matches)
	}
}

func TestSearchIsDeterministicAndCapped(t *testing.T) {
	var records []corpus.Record
	for i := 0; i < 25; i++ {
		records = append(records, corpus.Record{
			Collection: corpus.AbuDawud,
			English:    fmt.Sprintf("Prayer is the pillar of the religion, report %d", i),
			Number:     fmt.Sprint(i + 1),
		})
	}
	r := New()
	r.Rebuild(records)
	first := r.Search("pillar of the religion")
	second := r.Search("pillar of the religion")
	if len(first) != 10 {
		t.Fatalf("expected 10 matches, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
	// Equal scores keep corpus order.
	if first[0].Record.Number != "1" || first[9].Record.Number != "10" {
		t.Fatalf("unexpected order: %s..%s", first[0].Record.Number, first[9].Record.Number)
	}
}

func TestSubstringDistance(t *testing.T) {
	cases := []struct {
		pattern, text string
		want          int
	}{
		{"moon", "the moon was split", 0},
		{"mon", "the moon", 1},
		{"abc", "", 3},
		{"split", "spilt", 2},
	}
	for _, tc := range cases {
		if got := substringDistance([]rune(tc.pattern), []rune(tc.text)); got != tc.want {
			t.Fatalf("substringDistance(%q, %q) = %d, want %d", tc.pattern, tc.text, got, tc.want)
		}
	}
}

func TestSearchCachesPerIndex(t *testing.T) {
	r := New(WithCacheSize(2))
	r.Rebuild(sampleRecords())
	first := r.Search("moon split")
	if len(first) == 0 {
		t.Fatalf("expected matches")
	}
	idx := r.current.Load()
	if idx.cache.len() != 1 {
		t.Fatalf("expected cached pattern, got %d", idx.cache.len())
	}
	first[0].Score = 42
	if again := r.Search("Moon  split"); again[0].Score == 42 {
		t.Fatalf("cached matches must not alias caller slices")
	}
	r.Search("sincere advice")
	r.Search("judged by intentions")
	if idx.cache.len() != 2 {
		t.Fatalf("expected cache capped at 2, got %d", idx.cache.len())
	}

	r.Rebuild(sampleRecords()[2:])
	if got := r.Search("moon split"); len(got) != 0 {
		t.Fatalf("rebuild must drop cached results, got %+v", got)
	}
}

func TestSearchWithoutCache(t *testing.T) {
	r := New(WithCacheSize(0))
	r.Rebuild(sampleRecords())
	if got := r.Search("moon split"); len(got) == 0 {
		t.Fatalf("expected matches without a cache")
	}
	if r.current.Load().cache.len() != 0 {
		t.Fatalf("cache should be disabled")
	}
}

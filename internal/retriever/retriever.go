// File path: internal/retriever/retriever.go

// Package retriever builds the in-memory search index over the hadith corpus
// and answers approximate queries against it.
package retriever

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/common/telemetry"
	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/textnorm"
)

const (
	defaultThreshold = 0.3
	defaultLimit     = 10
	defaultCacheSize = 256
)

// Document is the searchable form of one record.
type Document struct {
	Text   string
	Record corpus.Record

	runes []rune
}

// Match is one ranked search hit.
type Match struct {
	Record corpus.Record `json:"record"`
	Score  float64       `json:"score"`
}

// Index is an immutable snapshot built from one corpus load.
type Index struct {
	docs  []Document
	cache *queryCache
}

// Retriever serves queries against the most recently built index. Queries
// issued before the first build see no matches.
type Retriever struct {
	current   atomic.Pointer[Index]
	buildMu   sync.Mutex
	threshold float64
	limit     int
	cacheSize int
}

type Option func(*Retriever)

// WithThreshold sets the maximum accepted score in (0,1]; lower is stricter.
func WithThreshold(threshold float64) Option {
	return func(r *Retriever) {
		if threshold > 0 && threshold <= 1 {
			r.threshold = threshold
		}
	}
}

// WithLimit caps the number of matches returned per query.
func WithLimit(limit int) Option {
	return func(r *Retriever) {
		if limit > 0 {
			r.limit = limit
		}
	}
}

// WithCacheSize sets how many recent queries each index remembers. Zero
// disables the cache.
func WithCacheSize(size int) Option {
	return func(r *Retriever) {
		if size >= 0 {
			r.cacheSize = size
		}
	}
}

func New(opts ...Option) *Retriever {
	r := &Retriever{threshold: defaultThreshold, limit: defaultLimit, cacheSize: defaultCacheSize}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// BuildDocument derives the composite search string of a record: normalized
// English text, lowercase collection name and reference number.
func BuildDocument(rec corpus.Record) Document {
	parts := make([]string, 0, 3)
	if english := textnorm.Normalize(rec.English); english != "" {
		parts = append(parts, english)
	}
	parts = append(parts, strings.ToLower(rec.Collection.DisplayName()), rec.Number)
	text := strings.Join(parts, " ")
	return Document{Text: text, Record: rec, runes: []rune(text)}
}

// Rebuild replaces the index with one built from records. Only one build
// runs at a time; readers keep using the previous snapshot until it is
// swapped in.
func (r *Retriever) Rebuild(records []corpus.Record) int {
	r.buildMu.Lock()
	defer r.buildMu.Unlock()
	idx := &Index{docs: make([]Document, 0, len(records)), cache: newQueryCache(r.cacheSize)}
	for _, rec := range records {
		idx.docs = append(idx.docs, BuildDocument(rec))
	}
	r.current.Store(idx)
	telemetry.RecordIndexBuild()
	common.Logger().Info("retriever: index built", "docs", len(idx.docs), "threshold", r.threshold)
	return len(idx.docs)
}

// Ready reports whether an index has been built.
func (r *Retriever) Ready() bool {
	return r.current.Load() != nil
}

// Size returns the number of indexed documents.
func (r *Retriever) Size() int {
	idx := r.current.Load()
	if idx == nil {
		return 0
	}
	return len(idx.docs)
}

// Threshold returns the configured match threshold.
func (r *Retriever) Threshold() float64 {
	return r.threshold
}

// Search returns up to the configured limit of matches ordered by ascending
// score; ties keep corpus order.
func (r *Retriever) Search(query string) []Match {
	idx := r.current.Load()
	if idx == nil {
		return nil
	}
	pattern := textnorm.Normalize(query)
	if pattern == "" {
		return nil
	}
	if cached, ok := idx.cache.get(pattern); ok {
		return cached
	}
	m := newMatcher(pattern, r.threshold)
	type hit struct {
		pos   int
		score float64
	}
	var hits []hit
	for i := range idx.docs {
		if score, ok := m.score(idx.docs[i].runes); ok {
			hits = append(hits, hit{pos: i, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score < hits[j].score })
	if len(hits) > r.limit {
		hits = hits[:r.limit]
	}
	out := make([]Match, 0, len(hits))
	for _, h := range hits {
		out = append(out, Match{Record: idx.docs[h.pos].Record, Score: h.score})
	}
	idx.cache.set(pattern, out)
	return out
}

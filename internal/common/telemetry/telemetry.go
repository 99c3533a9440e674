// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/hadithlens/hadithlens/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	searchTotal         *expvar.Int
	searchDirectTotal   *expvar.Int
	searchFallbackTotal *expvar.Int

	commentaryTotal     *expvar.Int
	commentaryCacheHits *expvar.Int
	rateLimitedTotal    *expvar.Map

	modelCallsTotal  *expvar.Map
	modelFailures    *expvar.Map
	modelLatencyMS   *expvar.Map
	corpusRecords    *expvar.Map
	indexBuildsTotal *expvar.Int
)

func ensureInit() {
	initOnce.Do(func() {
		searchTotal = expvar.NewInt("hadith_search_total")
		searchDirectTotal = expvar.NewInt("hadith_search_direct_total")
		searchFallbackTotal = expvar.NewInt("hadith_search_fallback_total")

		commentaryTotal = expvar.NewInt("hadith_commentary_total")
		commentaryCacheHits = expvar.NewInt("hadith_commentary_cache_hits")
		rateLimitedTotal = expvar.NewMap("hadith_rate_limited_total")

		modelCallsTotal = expvar.NewMap("hadith_model_calls_total")
		modelFailures = expvar.NewMap("hadith_model_failures_total")
		modelLatencyMS = expvar.NewMap("hadith_model_latency_ms")
		corpusRecords = expvar.NewMap("hadith_corpus_records")
		indexBuildsTotal = expvar.NewInt("hadith_index_builds_total")
	})
}

// StartSpan logs the start of a named operation at debug level and returns a
// func that logs its end with the elapsed duration.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", time.Since(sp.start)}, attrs...)...)
	}
}

// SpanDuration reports how long the span carried by ctx has been running.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}

func RecordSearch(direct bool) {
	ensureInit()
	searchTotal.Add(1)
	if direct {
		searchDirectTotal.Add(1)
	} else {
		searchFallbackTotal.Add(1)
	}
}

func RecordCommentary(cacheHit bool) {
	ensureInit()
	commentaryTotal.Add(1)
	if cacheHit {
		commentaryCacheHits.Add(1)
	}
}

func RecordRateLimited(endpoint string) {
	ensureInit()
	rateLimitedTotal.Add(key(endpoint, "unknown"), 1)
}

func RecordModelCall(purpose string, duration time.Duration, err error) {
	ensureInit()
	k := key(purpose, "generic")
	modelCallsTotal.Add(k, 1)
	if err != nil {
		modelFailures.Add(k, 1)
	}
	if duration > 0 {
		modelLatencyMS.Add(k, duration.Milliseconds())
	}
}

func RecordCorpus(collection string, records int) {
	ensureInit()
	corpusRecords.Set(key(collection, "unknown"), intVar(records))
}

func RecordIndexBuild() {
	ensureInit()
	indexBuildsTotal.Add(1)
}

func key(value, fallback string) string {
	k := strings.TrimSpace(strings.ToLower(value))
	if k == "" {
		return fallback
	}
	return k
}

func intVar(v int) *expvar.Int {
	out := new(expvar.Int)
	out.Set(int64(v))
	return out
}

// File path: internal/corpus/loader.go
package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/common/telemetry"
)

const maxDocumentBytes = 256 << 20

// Loader fetches the raw collection documents. The source template holds a
// single %s replaced by the collection key; http(s) sources are fetched,
// anything else is read from disk.
type Loader struct {
	template   string
	httpClient *http.Client
}

// LoadResult summarises one collection load.
type LoadResult struct {
	Collection Collection `json:"collection"`
	Records    int        `json:"records"`
	Error      string     `json:"error,omitempty"`
}

func NewLoader(template string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Loader{template: template, httpClient: &http.Client{Timeout: timeout}}
}

// Source returns the location a collection is loaded from.
func (l *Loader) Source(c Collection) string {
	return fmt.Sprintf(l.template, string(c))
}

// LoadInto loads all nine collections concurrently and replaces each one in
// repo. A failing collection is logged and keeps whatever repo already held
// for it (nothing on the first load); LoadInto itself only fails when ctx is
// cancelled.
func (l *Loader) LoadInto(ctx context.Context, repo *Repository) ([]LoadResult, error) {
	logger := common.Logger()
	ctx, end := telemetry.StartSpan(ctx, "corpus.load")
	all := All()
	results := make([]LoadResult, len(all))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(all))
	for i, c := range all {
		i, c := i, c
		g.Go(func() error {
			records, err := l.loadCollection(gctx, c)
			if err != nil {
				kept := repo.Count(c)
				results[i] = LoadResult{Collection: c, Records: kept, Error: err.Error()}
				logger.Warn("corpus: collection load degraded", "collection", c, "source", l.Source(c), "kept", kept, "error", err)
				return nil
			}
			repo.Replace(c, records)
			results[i] = LoadResult{Collection: c, Records: len(records)}
			telemetry.RecordCorpus(string(c), len(records))
			return nil
		})
	}
	_ = g.Wait()
	end("records", repo.Len())
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("load corpus: %w", err)
	}
	logger.Info("corpus: collections loaded", "records", repo.Len())
	return results, nil
}

func (l *Loader) loadCollection(ctx context.Context, c Collection) ([]Record, error) {
	data, err := l.read(ctx, l.Source(c))
	if err != nil {
		return nil, err
	}
	return DecodeCollection(c, data)
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := l.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %d", source, resp.StatusCode)
		}
		data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	return data, nil
}

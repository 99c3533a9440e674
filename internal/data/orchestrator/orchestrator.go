// File path: internal/data/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/retriever"
)

// ErrReloadInProgress is returned when a reload is requested while another
// one is still running.
var ErrReloadInProgress = errors.New("corpus reload already in progress")

// Status describes the outcome of the most recent load.
type Status struct {
	Collections []corpus.LoadResult `json:"collections"`
	Records     int                 `json:"records"`
	Indexed     int                 `json:"indexed"`
	LoadedAt    time.Time           `json:"loaded_at"`
	Duration    time.Duration       `json:"duration"`
}

// Orchestrator owns the corpus repository and the search index and keeps
// them in step: every load replaces the collections and then rebuilds the
// index from the result.
type Orchestrator struct {
	loader    *corpus.Loader
	repo      *corpus.Repository
	retriever *retriever.Retriever

	reloadMu sync.Mutex
	statusMu sync.RWMutex
	status   Status
}

type Option func(*Orchestrator)

// WithRepository injects the repository, mainly for tests.
func WithRepository(repo *corpus.Repository) Option {
	return func(o *Orchestrator) {
		if repo != nil {
			o.repo = repo
		}
	}
}

// WithRetriever injects the retriever whose index is rebuilt on load.
func WithRetriever(r *retriever.Retriever) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.retriever = r
		}
	}
}

func New(loader *corpus.Loader, opts ...Option) (*Orchestrator, error) {
	if loader == nil {
		return nil, fmt.Errorf("corpus loader required")
	}
	o := &Orchestrator{
		loader:    loader,
		repo:      corpus.NewRepository(),
		retriever: retriever.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o, nil
}

// Repository exposes the loaded collections.
func (o *Orchestrator) Repository() *corpus.Repository {
	if o == nil {
		return nil
	}
	return o.repo
}

// Retriever exposes the search index.
func (o *Orchestrator) Retriever() *retriever.Retriever {
	if o == nil {
		return nil
	}
	return o.retriever
}

// Source returns where collection c is loaded from.
func (o *Orchestrator) Source(c corpus.Collection) string {
	return o.loader.Source(c)
}

// Status returns the result of the last completed load.
func (o *Orchestrator) Status() Status {
	o.statusMu.RLock()
	defer o.statusMu.RUnlock()
	st := o.status
	st.Collections = append([]corpus.LoadResult(nil), o.status.Collections...)
	return st
}

// Reload fetches every collection and swaps in a freshly built index.
// Queries keep using the previous index until the new one is ready.
func (o *Orchestrator) Reload(ctx context.Context) (Status, error) {
	if !o.reloadMu.TryLock() {
		return Status{}, ErrReloadInProgress
	}
	defer o.reloadMu.Unlock()

	logger := common.Logger()
	start := time.Now()
	results, err := o.loader.LoadInto(ctx, o.repo)
	if err != nil {
		logger.Error("orchestrator: corpus load aborted", "error", err)
		return Status{}, err
	}
	indexed := o.retriever.Rebuild(o.repo.All())

	st := Status{
		Collections: results,
		Records:     o.repo.Len(),
		Indexed:     indexed,
		LoadedAt:    time.Now().UTC(),
		Duration:    time.Since(start),
	}
	o.statusMu.Lock()
	o.status = st
	o.statusMu.Unlock()

	var degraded int
	for _, res := range results {
		if res.Error != "" {
			degraded++
		}
	}
	logger.Info("orchestrator: corpus ready", "records", st.Records, "indexed", indexed, "degraded", degraded, "dur", st.Duration)
	return st, nil
}

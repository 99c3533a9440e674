// File path: internal/api/corpus_handler.go
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hadithlens/hadithlens/internal/common"
	"github.com/hadithlens/hadithlens/internal/corpus"
	"github.com/hadithlens/hadithlens/internal/data/orchestrator"
)

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if !s.corpus.Retriever().Ready() {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("search index not built"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleCollections(w http.ResponseWriter, r *http.Request) {
	repo := s.corpus.Repository()
	counts := repo.Counts()
	loadErrors := map[corpus.Collection]string{}
	for _, res := range s.corpus.Status().Collections {
		loadErrors[res.Collection] = res.Error
	}
	summaries := make([]collectionSummary, 0, len(counts))
	for _, c := range corpus.All() {
		summaries = append(summaries, collectionSummary{
			Key:       string(c),
			Name:      c.DisplayName(),
			Records:   counts[c],
			Source:    s.corpus.Source(c),
			LoadError: loadErrors[c],
		})
	}
	retr := s.corpus.Retriever()
	writeJSON(w, http.StatusOK, collectionsResponse{
		Collections: summaries,
		Records:     repo.Len(),
		Indexed:     retr.Size(),
		Ready:       retr.Ready(),
		Threshold:   retr.Threshold(),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	// The reload outlives a dropped client connection.
	st, err := s.corpus.Reload(context.WithoutCancel(r.Context()))
	if errors.Is(err, orchestrator.ErrReloadInProgress) {
		writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: corpus reloaded", "records", st.Records, "request_id", requestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, reloadResponse(st))
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := append([]common.LogEntry(nil), common.LogEntries()...)
	if component := r.URL.Query().Get("component"); component != "" {
		filtered := entries[:0]
		for _, entry := range entries {
			if entry.Component == component {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// File path: internal/api/search_handler.go
package api

import (
	"net/http"

	"github.com/hadithlens/hadithlens/internal/common"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res := s.search.Search(r.Context(), req.Query)
	logger.Info("api: search served", "source", res.Source, "matches", len(res.Matches), "request_id", requestIDFrom(r.Context()))
	writeJSON(w, http.StatusOK, searchResponse{Result: res.Text})
}

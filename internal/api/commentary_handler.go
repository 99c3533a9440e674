// File path: internal/api/commentary_handler.go
package api

import (
	"net/http"

	"github.com/hadithlens/hadithlens/internal/commentary"
)

const outcomeHeader = "X-Commentary-Outcome"

// writeOutcome always answers 200: a rate limit or a model failure is
// reported through the fixed payload, with the outcome in a header.
func writeOutcome(w http.ResponseWriter, o commentary.Outcome, payload any) {
	w.Header().Set(outcomeHeader, o.String())
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCommentary(w http.ResponseWriter, r *http.Request) {
	var req commentaryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, outcome := s.commentary.Commentary(r.Context(), clientID(r), req)
	writeOutcome(w, outcome, commentaryResponse(res))
}

func (s *Server) handleNarratorBio(w http.ResponseWriter, r *http.Request) {
	var req narratorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bio, outcome := s.commentary.Biography(r.Context(), clientID(r), req.Name)
	writeOutcome(w, outcome, narratorResponse{Bio: bio})
}

package web

import (
	"net/http"

	"github.com/akoval/bdtrack/internal/core"
)

func (s *Server) handleListHypotheses(w http.ResponseWriter, r *http.Request) {
	hyps, err := s.service.Store().ListHypotheses(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"hypotheses": hyps})
}

func (s *Server) handleCreateHypothesis(w http.ResponseWriter, r *http.Request) {
	var in core.HypothesisInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	h, err := s.service.CreateHypothesis(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, h)
}

func (s *Server) handleGetHypothesis(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	h, err := s.service.Store().GetHypothesis(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, h)
}

type decisionRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
	Status   string `json:"status"`
}

func (s *Server) handleUpdateDecision(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	var req decisionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	h, err := s.service.UpdateDecision(r.Context(), id, req.Decision, req.Notes, req.Status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, h)
}

func (s *Server) handleRefreshCard(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	path, err := s.service.RefreshCard(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]string{"card_path": path})
}

func (s *Server) handleHypothesisMetrics(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	metrics, err := s.service.HypothesisMetrics(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, metrics)
}

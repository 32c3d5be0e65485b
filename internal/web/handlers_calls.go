package web

import (
	"net/http"

	"github.com/akoval/bdtrack/internal/core"
)

func (s *Server) handleListCalls(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	if _, err := s.service.Store().GetHypothesis(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	calls, err := s.service.Store().ListCallsByHypothesis(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"calls": calls})
}

func (s *Server) handleLogCall(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	var in core.CallInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	call, err := s.service.LogCall(r.Context(), id, in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, call)
}

func (s *Server) handleGetTAL(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	view, err := s.service.HypothesisTAL(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, view)
}

type talAccountRequest struct {
	CompanyID int64  `json:"company_id"`
	FitReason string `json:"fit_reason"`
	PainHint  string `json:"pain_hint"`
}

func (s *Server) handleAddTALAccount(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid hypothesis id")
		return
	}
	var req talAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	added, err := s.service.AddTALAccount(r.Context(), id, req.CompanyID, req.FitReason, req.PainHint)
	if err != nil {
		respondError(w, r, err)
		return
	}
	status := http.StatusCreated
	if !added {
		status = http.StatusOK
	}
	writeJSONStatus(w, status, map[string]bool{"added": added})
}

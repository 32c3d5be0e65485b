package web

import (
	"net/http"
	"strings"

	"github.com/akoval/bdtrack/internal/store"
)

func (s *Server) handleListVPPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.service.Store().ListVPPoints(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"vp_points": points})
}

func (s *Server) handleCreateVPPoint(w http.ResponseWriter, r *http.Request) {
	var in store.VPPoint
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	created, err := s.service.Store().CreateVPPoint(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, created)
}

func (s *Server) handleListICPs(w http.ResponseWriter, r *http.Request) {
	icps, err := s.service.Store().ListICPs(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"icps": icps})
}

func (s *Server) handleCreateICP(w http.ResponseWriter, r *http.Request) {
	var in store.ICP
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	created, err := s.service.Store().CreateICP(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, created)
}

func (s *Server) handleListVerticals(w http.ResponseWriter, r *http.Request) {
	verticals, err := s.service.Store().ListVerticals(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"verticals": verticals})
}

func (s *Server) handleCreateVertical(w http.ResponseWriter, r *http.Request) {
	var in store.Vertical
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	created, err := s.service.Store().CreateVertical(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, created)
}

func (s *Server) handleCreateSubVertical(w http.ResponseWriter, r *http.Request) {
	verticalID, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid vertical id")
		return
	}
	var in store.SubVertical
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "bad_request", "name is required")
		return
	}
	in.VerticalID = verticalID
	created, err := s.service.Store().CreateSubVertical(r.Context(), in)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, created)
}

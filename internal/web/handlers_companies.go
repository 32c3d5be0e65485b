package web

import (
	"net/http"
)

type importRequest struct {
	Path  string `json:"path"`
	Limit int    `json:"limit"`
}

func (s *Server) handleImportCompanies(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON body: "+err.Error())
			return
		}
	}
	path := req.Path
	if path == "" {
		path = s.cfg.Import.CompaniesPath
	}

	report, err := s.service.ImportCompanies(r.Context(), path, req.Limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(r, "limit", s.cfg.Import.ListLimit)

	companies, err := s.service.Store().ListCompanies(r.Context(), q.Get("q"), q.Get("category"), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	total, err := s.service.Store().CountCompanies(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"companies": companies,
		"total":     total,
	})
}

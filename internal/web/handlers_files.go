package web

import (
	"net/http"
	"path"
)

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.Reindex(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(r, "limit", s.cfg.Index.ListLimit)

	docs, err := s.service.Store().ListDocuments(r.Context(), q.Get("q"), q.Get("kind"), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}
	total, err := s.service.Store().CountDocuments(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{
		"files": docs,
		"total": total,
	})
}

func (s *Server) handleFileKinds(w http.ResponseWriter, r *http.Request) {
	kinds, err := s.service.Store().DocumentKinds(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"kinds": kinds})
}

func (s *Server) handleFileDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid file id")
		return
	}
	detail, err := s.service.FileDetail(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	writeJSON(w, detail)
}

func (s *Server) handleFileDownload(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "bad_request", "invalid file id")
		return
	}
	abs, name, err := s.service.FilePath(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", contentDisposition(name))
	http.ServeFile(w, r, abs)
}

// contentDisposition builds an attachment header from a stored relative path,
// keeping only the base name.
func contentDisposition(name string) string {
	return `attachment; filename="` + path.Base(name) + `"`
}

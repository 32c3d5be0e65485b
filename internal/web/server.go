// Package web provides the HTTP server and JSON API handlers for the tracker.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/akoval/bdtrack/internal/config"
	"github.com/akoval/bdtrack/internal/core"
	mw "github.com/akoval/bdtrack/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the tracker API.
type Server struct {
	service *core.Service
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a new Server instance.
func NewServer(service *core.Service, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute)
		s.router.Use(limiter.middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// File catalog
		r.Post("/reindex", s.handleReindex)
		r.Get("/files", s.handleListFiles)
		r.Get("/files/kinds", s.handleFileKinds)
		r.Get("/files/{id}", s.handleFileDetail)
		r.Get("/files/{id}/download", s.handleFileDownload)

		// Company catalog
		r.Post("/companies/import", s.handleImportCompanies)
		r.Get("/companies", s.handleListCompanies)

		// Hypotheses
		r.Get("/hypotheses", s.handleListHypotheses)
		r.Post("/hypotheses", s.handleCreateHypothesis)
		r.Get("/hypotheses/{id}", s.handleGetHypothesis)
		r.Patch("/hypotheses/{id}/decision", s.handleUpdateDecision)
		r.Post("/hypotheses/{id}/refresh-card", s.handleRefreshCard)
		r.Get("/hypotheses/{id}/metrics", s.handleHypothesisMetrics)

		// Calls and TAL
		r.Get("/hypotheses/{id}/calls", s.handleListCalls)
		r.Post("/hypotheses/{id}/calls", s.handleLogCall)
		r.Get("/hypotheses/{id}/tal", s.handleGetTAL)
		r.Post("/hypotheses/{id}/tal", s.handleAddTALAccount)

		// Framework reference data
		r.Get("/vp-points", s.handleListVPPoints)
		r.Post("/vp-points", s.handleCreateVPPoint)
		r.Get("/icps", s.handleListICPs)
		r.Post("/icps", s.handleCreateICP)
		r.Get("/verticals", s.handleListVerticals)
		r.Post("/verticals", s.handleCreateVertical)
		r.Post("/verticals/{id}/subs", s.handleCreateSubVertical)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Package api exposes the reorder operation over HTTP as a small JSON API.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gocopula/app"
	"gocopula/internal"
)

// Server wraps the HTTP surface around the reorder service
type Server struct {
	router  *chi.Mux
	service *app.ReorderService
	logger  *internal.Logger
}

// NewServer creates the API server and mounts all routes
func NewServer(service *app.ReorderService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:  chi.NewRouter(),
		service: service,
		logger:  logger.WithScope("api"),
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/reorder", s.handleReorder)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
		r.Get("/runs/{runID}/report", s.handleRunReport)
	})

	return s
}

// Router exposes the mux for tests and embedding
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP on the given port
func (s *Server) Start(port string) error {
	s.logger.Info("listening on :%s", port)
	return http.ListenAndServe(":"+port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

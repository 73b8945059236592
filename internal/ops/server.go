package ops

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"heartrisk/adapters/forest"
)

// Server exposes the operational endpoints (liveness, model info) on a
// separate port from the patient-facing UI.
type Server struct {
	router *chi.Mux
	model  *forest.Model
}

// NewServer wires the ops routes around a loaded model handle.
func NewServer(model *forest.Model) *Server {
	s := &Server{
		router: chi.NewRouter(),
		model:  model,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/model", s.handleModelInfo)

	return s
}

// Router exposes the underlying handler, used by main and by tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the ops server
func (s *Server) Start(addr string) error {
	log.Printf("Starting ops endpoints on http://%s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.model.Info()); err != nil {
		log.Printf("[Ops] Failed to encode model info: %v", err)
		http.Error(w, "failed to encode model info", http.StatusInternalServerError)
	}
}

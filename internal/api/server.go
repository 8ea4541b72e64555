package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/mentionset/internal/config"
	"github.com/dgallion1/mentionset/internal/dataset"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the read-only HTTP API over a loaded corpus.
type Server struct {
	router   chi.Router
	reader   *dataset.Reader
	gatherer prometheus.Gatherer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(reader *dataset.Reader, gatherer prometheus.Gatherer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		reader:   reader,
		gatherer: gatherer,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/status", s.handleStatus)
		r.Get("/api/splits", s.handleListSplits)
		r.Get("/api/splits/{split}/ids", s.handleSplitIDs)
		r.Get("/api/splits/{split}/instances", s.handleSplitInstances)
		r.Get("/api/mentions/{id}", s.handleGetMention)
		r.Get("/api/report", s.handleReport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

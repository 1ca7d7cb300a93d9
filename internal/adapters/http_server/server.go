package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/fcors"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

// New builds the router with the full middleware stack. allowedOrigin is the
// site origin the browser app is served from; all middlewares must be
// registered before any routes are added.
func New(allowedOrigin string) (*Server, error) {
	cors, err := fcors.AllowAccess(
		fcors.FromOrigins(allowedOrigin),
		fcors.WithMethods(
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
		),
		fcors.WithRequestHeaders("Authorization", "Content-Type"),
	)
	if err != nil {
		return nil, err
	}

	m := chi.NewRouter()
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(15 * time.Second))
	m.Use(cors)
	m.Use(Metrics)
	m.Use(Logger(log.Logger))

	return &Server{mux: m}, nil
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

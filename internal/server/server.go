package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	riotapi "github.com/tristan-derez/league-stats/internal/riot-api"
	"github.com/tristan-derez/league-stats/internal/service"
)

// LimiterReporter exposes limiter snapshots for the health endpoint.
type LimiterReporter interface {
	LimiterStats() []riotapi.LimiterStats
}

type Deps struct {
	Service  *service.Service
	Limiters LimiterReporter
	Logger   *logrus.Logger
}

// Server represents the HTTP server
type Server struct {
	router   *chi.Mux
	server   *http.Server
	addr     string
	svc      *service.Service
	limiters LimiterReporter
	logger   *logrus.Logger
}

// New creates a new HTTP server instance
func New(addr string, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		router:   r,
		addr:     addr,
		svc:      deps.Service,
		limiters: deps.Limiters,
		logger:   logger,
	}
	r.Use(s.requestLogger)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "the requested resource was not found")
	})

	s.registerRoutes()
	return s
}

// Handler returns the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s.logger.WithField("addr", s.addr).Info("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
		}).Debug("request handled")
	})
}

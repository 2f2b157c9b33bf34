// Package server exposes the pinmap pipeline over HTTP.
//
// Routes:
//
//	GET  /                      status and version
//	GET  /api/regions           region, projection and aspect catalog
//	GET  /api/map-bounds        bounds and projected aspect of an area
//	GET  /api/map-image         base-map PNG of an area
//	POST /api/upload            parse a CSV or GeoJSON file into a location set
//	POST /api/layout            compose a plan
//	POST /api/generate          compose and render one artifact
//	POST /api/plans             compose and store a plan
//	GET  /api/plans/{id}        load a stored plan, optionally rendered
//	GET  /metrics               Prometheus metrics
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pinmap/internal/config"
	"github.com/matzehuels/pinmap/pkg/pipeline"
	"github.com/matzehuels/pinmap/pkg/store"
)

const shutdownTimeout = 10 * time.Second

// Server serves the pinmap API.
type Server struct {
	cfg      config.ServerConfig
	defaults config.DefaultsConfig
	runner   *pipeline.Runner
	store    store.Store
	metrics  *Metrics
	logger   *log.Logger
	router   chi.Router
}

// New builds a server. st may be nil, in which case the plan endpoints
// answer 501. A nil metrics disables /metrics.
func New(cfg *config.Config, runner *pipeline.Runner, st store.Store, metrics *Metrics, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:      cfg.Server,
		defaults: cfg.Defaults,
		runner:   runner,
		store:    st,
		metrics:  metrics,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	if s.metrics != nil {
		r.Use(s.instrument)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", s.handleStatus)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if s.cfg.RequestTimeout > 0 {
			r.Use(middleware.Timeout(s.cfg.RequestTimeout))
		}
		r.Get("/regions", s.handleRegions)
		r.Get("/map-bounds", s.handleMapBounds)
		r.Get("/map-image", s.handleMapImage)
		r.Post("/upload", s.handleUpload)
		r.Post("/layout", s.handleLayout)
		r.Post("/generate", s.handleGenerate)
		r.Post("/plans", s.handleSavePlan)
		r.Get("/plans/{id}", s.handleGetPlan)
	})
	return r
}

// Run serves on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

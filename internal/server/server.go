// Package server serves one imagewall visual over HTTP.
//
// The server owns a [pipeline.Visual] and the [selection.Store] acting as
// its selection transport. Clients read frames, toggle points and clear
// the selection; the dataset file is watched and reloaded on change.
//
// # Routes
//
//	GET    /healthz              liveness and current cycle
//	GET    /frame                current frame as JSON
//	GET    /frame.svg            current frame as SVG
//	GET    /frame.png            current frame as a PNG preview
//	POST   /points/{key}/toggle  toggle one point
//	DELETE /selection            clear the selection
//	PUT    /viewport             resize and relayout
//	PUT    /mode/{mode}          switch layout mode and relayout
package server

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/imagewall/pkg/cache"
	"github.com/matzehuels/imagewall/pkg/errors"
	wallio "github.com/matzehuels/imagewall/pkg/io"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/selection"
)

// Config configures a Server.
type Config struct {
	// DatasetPath is the points file served and watched.
	DatasetPath string

	Settings model.Settings
	Viewport model.Viewport

	// Selection seeds the selection store.
	Selection []model.Identity

	// Policy is the repaint policy for selection changes made through
	// DELETE /selection.
	Policy selection.Policy

	// Runner computes layouts. nil gets an in-memory cached runner.
	Runner *pipeline.Runner

	// Artifacts caches rendered SVG and PNG frames. nil gets a memory cache.
	Artifacts cache.Cache

	Logger *log.Logger
}

// Server is an HTTP front end for one visual.
type Server struct {
	path      string
	visual    *pipeline.Visual
	store     *selection.Store
	artifacts cache.Cache
	keyer     cache.Keyer
	logger    *log.Logger

	mu       sync.Mutex
	points   []model.DataPoint
	settings model.Settings
	viewport model.Viewport
}

// New loads the dataset and computes the first frame.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(cache.NewMemoryCache(0), nil, cfg.Logger)
	}
	if cfg.Artifacts == nil {
		cfg.Artifacts = cache.NewMemoryCache(0)
	}

	ds, err := wallio.ImportJSON(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		path:      cfg.DatasetPath,
		visual:    pipeline.NewVisual(cfg.Runner, selection.Highlighter{Policy: cfg.Policy}, cfg.Logger),
		store:     selection.NewStore(cfg.Selection...),
		artifacts: cfg.Artifacts,
		keyer:     cache.NewScopedKeyer(cfg.Runner.Keyer, "frame"),
		logger:    cfg.Logger,
		points:    ds.Points,
		settings:  cfg.Settings,
		viewport:  cfg.Viewport,
	}
	if _, err := s.update(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("dataset loaded", "path", s.path, "points", len(ds.Points), "dropped", ds.Dropped)
	return s, nil
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	r.Use(serverHeader)

	r.Get("/healthz", s.handleHealth)
	r.Get("/frame", s.handleFrame)
	r.Get("/frame.svg", s.handleArtifact(pipeline.FormatSVG))
	r.Get("/frame.png", s.handleArtifact(pipeline.FormatPNG))
	r.Post("/points/{key}/toggle", s.handleToggle)
	r.Delete("/selection", s.handleClear)
	r.Put("/viewport", s.handleViewport)
	r.Put("/mode/{mode}", s.handleMode)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Close releases the artifact cache.
func (s *Server) Close() error {
	return s.artifacts.Close()
}

// update runs a full pipeline update from the current inputs.
func (s *Server) update(ctx context.Context) (*pipeline.Frame, error) {
	s.mu.Lock()
	in := pipeline.Input{
		Points:    s.points,
		Viewport:  s.viewport,
		Settings:  s.settings,
		Selection: s.store.Snapshot(),
	}
	s.mu.Unlock()
	return s.visual.Update(ctx, in)
}

// reload replaces the dataset and relayouts.
func (s *Server) reload(ctx context.Context) error {
	ds, err := wallio.ImportJSON(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.points = ds.Points
	s.mu.Unlock()

	frame, err := s.update(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("dataset reloaded", "points", len(frame.Points), "dropped", ds.Dropped, "cycle", frame.Cycle)
	return nil
}

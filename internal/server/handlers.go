package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/imagewall/pkg/cache"
	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/render/sink"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type healthResponse struct {
	Status string `json:"status"`
	Cycle  uint64 `json:"cycle"`
	Points int    `json:"points"`
}

type toggleResponse struct {
	Intent  string          `json:"intent"`
	Key     string          `json:"key"`
	Applied bool            `json:"applied"`
	Frame   json.RawMessage `json:"frame"`
}

type viewportRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	frame := s.visual.Frame()
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Cycle: frame.Cycle, Points: len(frame.Points)})
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.writeFrame(w, r, s.visual.Frame())
}

// handleArtifact renders the current frame in format, memoized per frame.
func (s *Server) handleArtifact(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		frame := s.visual.Frame()

		frameHash, err := cache.HashJSON(frame)
		if err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "hash frame"))
			return
		}
		key := s.keyer.ArtifactKey(frameHash, cache.ArtifactKeyOpts{Format: format})

		data, hit, err := s.artifacts.Get(ctx, key)
		if err != nil || !hit {
			data, err = s.renderArtifact(frame, format)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if err := s.artifacts.Set(ctx, key, data, cache.TTLArtifact); err != nil {
				s.logger.Warn("cache artifact", "format", format, "err", err)
			}
		}

		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("ETag", `"`+frameHash[:16]+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func (s *Server) renderArtifact(frame *pipeline.Frame, format string) ([]byte, error) {
	switch format {
	case pipeline.FormatSVG:
		return sink.RenderSVG(frame, sink.WithLogger(s.logger))
	case pipeline.FormatPNG:
		return sink.RenderPNG(frame, sink.WithPNGLogger(s.logger))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// handleToggle paints the optimistic frame, commits the intent to the store
// and resolves it against the reported selection.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := model.ID(chi.URLParam(r, "key"))

	intent, _, err := s.visual.RequestToggle(ctx, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sel, err := s.store.Toggle(ctx, intent)
	if err != nil {
		s.visual.Abandon(ctx, intent, s.store.Snapshot())
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "toggle %s", id.Key))
		return
	}
	frame, applied := s.visual.Resolve(ctx, intent, sel)

	body, err := sink.RenderJSON(frame, sink.WithJSONDiff())
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode frame"))
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{
		Intent:  intent.ID.String(),
		Key:     id.Key,
		Applied: applied,
		Frame:   body,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sel, err := s.store.Clear(ctx)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "clear selection"))
		return
	}
	s.writeFrame(w, r, s.visual.Notify(ctx, sel))
}

func (s *Server) handleViewport(w http.ResponseWriter, r *http.Request) {
	var req viewportRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode viewport"))
		return
	}
	vp := model.Viewport{Width: req.Width, Height: req.Height}.Normalize()
	if vp.Empty() {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "viewport must have a positive width and height"))
		return
	}

	s.mu.Lock()
	s.viewport = vp
	s.mu.Unlock()

	frame, err := s.update(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeFrame(w, r, frame)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	mode, err := pipeline.ValidateMode(model.Mode(chi.URLParam(r, "mode")))
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.mu.Lock()
	s.settings.Mode = mode
	s.mu.Unlock()

	frame, err := s.update(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.writeFrame(w, r, frame)
}

func (s *Server) writeFrame(w http.ResponseWriter, r *http.Request, frame *pipeline.Frame) {
	body, err := sink.RenderJSON(frame, sink.WithJSONDiff())
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode frame"))
		return
	}
	w.Header().Set("Content-Type", contentTypes[pipeline.FormatJSON])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

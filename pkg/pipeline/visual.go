package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/observability"
	"github.com/matzehuels/imagewall/pkg/reconcile"
	"github.com/matzehuels/imagewall/pkg/selection"
)

// Input is everything one update reads. The selection is a snapshot taken
// by the caller at the start of the update.
type Input struct {
	Points    []model.DataPoint
	Viewport  model.Viewport
	Settings  model.Settings
	Selection selection.Selection
}

// Frame is the render state produced by one step of a Visual.
type Frame struct {
	Cycle       uint64                  `json:"cycle"`
	Mode        model.Mode              `json:"mode"`
	Viewport    model.Viewport          `json:"viewport"`
	Points      []model.PositionedPoint `json:"points"`
	Diff        reconcile.Diff          `json:"diff"`
	Columns     int                     `json:"columns,omitempty"`
	TotalHeight float64                 `json:"total_height,omitempty"`
	Hidden      bool                    `json:"hidden"`
	Selection   []string                `json:"selection"`
	CacheHit    bool                    `json:"cache_hit"`
}

// Visual is one visual's session: the previous frame, the update cycle
// counter and the toggle intents awaiting their round-trip. Each method
// runs to completion under the session lock, so updates never interleave.
type Visual struct {
	runner      *Runner
	highlighter selection.Highlighter
	logger      *log.Logger

	mu      sync.Mutex
	cycle   uint64
	layout  Layout
	sel     selection.Selection
	painted []model.PositionedPoint
	syncer  reconcile.Syncer
	pending map[uuid.UUID]selection.ToggleIntent
	frame   *Frame
}

// NewVisual creates a session. A nil runner gets an uncached one.
func NewVisual(runner *Runner, h selection.Highlighter, logger *log.Logger) *Visual {
	if runner == nil {
		runner = NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = runner.Logger
	}
	return &Visual{
		runner:      runner,
		highlighter: h,
		logger:      logger,
		pending:     make(map[uuid.UUID]selection.ToggleIntent),
		frame:       &Frame{Hidden: true},
	}
}

// Update runs the full pipeline for a new dataset, viewport, settings or
// selection. It starts a new cycle, which makes every pending toggle intent
// stale. An empty dataset yields a hidden frame.
func (v *Visual) Update(ctx context.Context, in Input) (*Frame, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cycle++
	clear(v.pending)

	opts := Options{Settings: in.Settings, Viewport: in.Viewport, Logger: v.logger}
	if len(in.Points) == 0 {
		if err := opts.ValidateForLayout(); err != nil {
			return nil, err
		}
		v.layout = Layout{Mode: opts.Settings.Mode, Viewport: opts.Viewport}
		v.sel = in.Selection
		return v.publish(ctx, nil, false), nil
	}

	layout, hit, err := v.runner.LayoutWithCacheInfo(ctx, in.Points, opts)
	if err != nil {
		return nil, err
	}
	v.layout = layout
	v.sel = in.Selection

	frame := v.publish(ctx, selection.Emphasize(layout.Points, in.Selection), hit)
	v.logger.Debug("updated visual",
		"cycle", v.cycle,
		"mode", layout.Mode,
		"points", len(layout.Points),
		"selected", in.Selection.Len(),
		"cache_hit", hit)
	return frame, nil
}

// RequestToggle proposes flipping id's membership. It returns the intent for
// the selection transport and an optimistic frame where only the interacted
// point changed.
func (v *Visual) RequestToggle(ctx context.Context, id model.Identity) (selection.ToggleIntent, *Frame, error) {
	if err := errors.ValidateIdentityKey(id.Key); err != nil {
		return selection.ToggleIntent{}, nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.contains(id) {
		return selection.ToggleIntent{}, nil, errors.New(errors.ErrCodeNotFound, "no point with identity %q", id.Key)
	}

	intent := selection.NewToggleIntent(id, v.cycle)
	v.pending[intent.ID] = intent
	observability.Selection().OnToggleRequested(ctx, id.Key, intent.Cycle)

	frame := v.publish(ctx, selection.Optimistic(v.painted, intent), v.frame.CacheHit)
	return intent, frame, nil
}

// Resolve applies the selection reported back for intent. Intents raised
// before the current cycle are stale, and intents that are not pending
// (already resolved or never raised here) are unknown: either way the result
// is discarded and the current frame returned with false.
//
// On success every point is recomputed from sel, except the interacted
// point which stays fully emphasized.
func (v *Visual) Resolve(ctx context.Context, intent selection.ToggleIntent, sel selection.Selection) (*Frame, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, pending := v.pending[intent.ID]
	delete(v.pending, intent.ID)
	if intent.StaleFor(v.cycle) {
		observability.Selection().OnToggleStale(ctx, intent.Identity.Key, intent.Cycle, v.cycle)
		v.logger.Debug("discarded stale toggle",
			"key", intent.Identity.Key,
			"intent_cycle", intent.Cycle,
			"cycle", v.cycle)
		return v.frame, false
	}
	if !pending {
		v.logger.Debug("discarded unknown toggle", "key", intent.Identity.Key, "intent", intent.ID)
		return v.frame, false
	}

	v.sel = sel
	points := selection.Optimistic(selection.Emphasize(v.layout.Points, sel), intent)
	observability.Selection().OnToggleResolved(ctx, intent.Identity.Key, sel.Len(), time.Since(intent.RequestedAt))
	return v.publish(ctx, points, v.frame.CacheHit), true
}

// Abandon withdraws a pending intent whose selection round-trip failed and
// repaints the current cycle from sel, dropping the optimistic emphasis.
func (v *Visual) Abandon(ctx context.Context, intent selection.ToggleIntent, sel selection.Selection) *Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.pending[intent.ID]; !ok || intent.StaleFor(v.cycle) {
		return v.frame
	}
	delete(v.pending, intent.ID)
	v.sel = sel
	v.logger.Debug("abandoned toggle", "key", intent.Identity.Key, "intent", intent.ID)
	return v.publish(ctx, selection.Emphasize(v.layout.Points, sel), v.frame.CacheHit)
}

// Notify handles a selection change made elsewhere, repainting through the
// session's highlighter policy.
func (v *Visual) Notify(ctx context.Context, sel selection.Selection) *Frame {
	v.mu.Lock()
	defer v.mu.Unlock()

	prev := v.sel
	v.sel = sel
	return v.publish(ctx, v.highlighter.Apply(v.painted, prev, sel), v.frame.CacheHit)
}

// Frame returns the most recent frame.
func (v *Visual) Frame() *Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// Layout returns the geometry of the current cycle.
func (v *Visual) Layout() Layout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.layout
}

// Cycle returns the current update cycle.
func (v *Visual) Cycle() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cycle
}

// Pending returns the number of toggle intents awaiting their round-trip.
func (v *Visual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}

func (v *Visual) contains(id model.Identity) bool {
	for _, p := range v.layout.Points {
		if p.Identity().Matches(id) {
			return true
		}
	}
	return false
}

// publish syncs points against the previous frame and stores the result.
// Callers hold mu.
func (v *Visual) publish(ctx context.Context, points []model.PositionedPoint, hit bool) *Frame {
	diff := v.syncer.Sync(points)
	observability.Pipeline().OnSyncComplete(ctx, len(diff.Entered), len(diff.Updated), len(diff.Exited))

	v.painted = points
	v.frame = &Frame{
		Cycle:       v.cycle,
		Mode:        v.layout.Mode,
		Viewport:    v.layout.Viewport,
		Points:      points,
		Diff:        diff,
		Columns:     v.layout.Columns,
		TotalHeight: v.layout.TotalHeight,
		Hidden:      len(points) == 0,
		Selection:   v.sel.Keys(),
		CacheHit:    hit,
	}
	return v.frame
}

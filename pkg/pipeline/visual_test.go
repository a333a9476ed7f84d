package pipeline

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/imagewall/pkg/cache"
	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/selection"
)

func emphases(f *Frame) []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.Emphasis
	}
	return out
}

func newVisual(policy selection.Policy) *Visual {
	return NewVisual(NewRunner(nil, nil, nil), selection.Highlighter{Policy: policy}, nil)
}

func input(sel selection.Selection) Input {
	return Input{
		Points:    samplePoints("A", "B", "C"),
		Viewport:  model.Viewport{Width: 400, Height: 400},
		Settings:  model.Settings{MaxColumns: 4, ResolutionThreshold: 200, Mode: model.ModeGrid},
		Selection: sel,
	}
}

func TestVisualUpdate(t *testing.T) {
	ctx := context.Background()
	v := newVisual(selection.PolicyRecompute)

	f, err := v.Update(ctx, input(selection.FromKeys("A")))
	if err != nil {
		t.Fatal(err)
	}
	if f.Cycle != 1 || f.Hidden {
		t.Errorf("Cycle = %d, Hidden = %v", f.Cycle, f.Hidden)
	}
	if got := emphases(f); !slices.Equal(got, []float64{1, 0.5, 0.5}) {
		t.Errorf("emphasis = %v", got)
	}
	if len(f.Diff.Entered) != 3 {
		t.Errorf("first frame entered %d, want 3", len(f.Diff.Entered))
	}
	if !slices.Equal(f.Selection, []string{"A"}) {
		t.Errorf("Selection = %v", f.Selection)
	}

	f, _ = v.Update(ctx, input(selection.FromKeys("A")))
	if len(f.Diff.Updated) != 3 || len(f.Diff.Entered) != 0 {
		t.Errorf("second frame diff = %+v", f.Diff)
	}
}

func TestVisualEmptyDataHides(t *testing.T) {
	ctx := context.Background()
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(selection.Selection{}))

	in := input(selection.Selection{})
	in.Points = nil
	f, err := v.Update(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if !f.Hidden || len(f.Points) != 0 {
		t.Errorf("Hidden = %v, points = %d", f.Hidden, len(f.Points))
	}
	if len(f.Diff.Exited) != 3 {
		t.Errorf("exited %d, want 3", len(f.Diff.Exited))
	}
}

func TestVisualToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := selection.NewStore()
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(store.Snapshot()))

	intent, optimistic, err := v.RequestToggle(ctx, model.ID("B"))
	if err != nil {
		t.Fatal(err)
	}
	if got := emphases(optimistic); !slices.Equal(got, []float64{1, 1, 1}) {
		t.Errorf("optimistic emphasis = %v", got)
	}
	if v.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", v.Pending())
	}

	sel, _ := store.Toggle(ctx, intent)
	f, ok := v.Resolve(ctx, intent, sel)
	if !ok {
		t.Fatal("Resolve should accept a current intent")
	}
	if got := emphases(f); !slices.Equal(got, []float64{0.5, 1, 0.5}) {
		t.Errorf("resolved emphasis = %v", got)
	}
	if v.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", v.Pending())
	}
}

func TestVisualResolveKeepsInteractedPointFull(t *testing.T) {
	ctx := context.Background()
	store := selection.NewStore(model.ID("A"), model.ID("B"))
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(store.Snapshot()))

	// Deselect B while A stays selected.
	intent, _, _ := v.RequestToggle(ctx, model.ID("B"))
	sel, _ := store.Toggle(ctx, intent)
	f, _ := v.Resolve(ctx, intent, sel)
	if got := emphases(f); !slices.Equal(got, []float64{1, 1, 0.5}) {
		t.Errorf("emphasis = %v", got)
	}
}

func TestVisualStaleToggleDiscarded(t *testing.T) {
	ctx := context.Background()
	store := selection.NewStore()
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(store.Snapshot()))

	intent, _, _ := v.RequestToggle(ctx, model.ID("A"))

	// New data arrives before the round-trip completes.
	current, _ := v.Update(ctx, input(store.Snapshot()))

	sel, _ := store.Toggle(ctx, intent)
	f, ok := v.Resolve(ctx, intent, sel)
	if ok {
		t.Error("stale intent should be discarded")
	}
	if f != current {
		t.Error("stale resolve should return the current frame unchanged")
	}
	if got := emphases(f); !slices.Equal(got, []float64{1, 1, 1}) {
		t.Errorf("emphasis = %v", got)
	}
}

func TestVisualRequestToggleErrors(t *testing.T) {
	ctx := context.Background()
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(selection.Selection{}))

	if _, _, err := v.RequestToggle(ctx, model.ID("")); err == nil {
		t.Error("empty identity should be rejected")
	}
	if _, _, err := v.RequestToggle(ctx, model.ID("Z")); err == nil {
		t.Error("unknown identity should be rejected")
	}
}

func TestVisualNotifyPolicies(t *testing.T) {
	ctx := context.Background()

	t.Run("recompute", func(t *testing.T) {
		v := newVisual(selection.PolicyRecompute)
		_, _ = v.Update(ctx, input(selection.FromKeys("A")))
		f := v.Notify(ctx, selection.Selection{})
		if got := emphases(f); !slices.Equal(got, []float64{1, 1, 1}) {
			t.Errorf("emphasis after clear = %v", got)
		}
	})

	t.Run("delta", func(t *testing.T) {
		v := newVisual(selection.PolicyDelta)
		_, _ = v.Update(ctx, input(selection.FromKeys("A")))
		f := v.Notify(ctx, selection.Selection{})
		if got := emphases(f); !slices.Equal(got, []float64{1, 0.5, 0.5}) {
			t.Errorf("emphasis after clear = %v", got)
		}
	})
}

func TestVisualResolveUnknownIntent(t *testing.T) {
	ctx := context.Background()
	store := selection.NewStore()
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(store.Snapshot()))

	intent, _, _ := v.RequestToggle(ctx, model.ID("B"))
	sel, _ := store.Toggle(ctx, intent)
	if _, ok := v.Resolve(ctx, intent, sel); !ok {
		t.Fatal("first resolve should apply")
	}

	// B is deselected elsewhere, then the same intent arrives again.
	current := v.Notify(ctx, selection.Selection{})
	f, ok := v.Resolve(ctx, intent, selection.FromKeys("A"))
	if ok {
		t.Error("a resolved intent should not apply twice")
	}
	if f != current {
		t.Error("replayed resolve should return the current frame unchanged")
	}

	forged := selection.NewToggleIntent(model.ID("C"), v.Cycle())
	if _, ok := v.Resolve(ctx, forged, selection.FromKeys("C")); ok {
		t.Error("an intent never raised here should not apply")
	}
}

func TestVisualAbandonRestoresSelection(t *testing.T) {
	ctx := context.Background()
	store := selection.NewStore(model.ID("A"))
	v := newVisual(selection.PolicyRecompute)
	_, _ = v.Update(ctx, input(store.Snapshot()))

	intent, optimistic, _ := v.RequestToggle(ctx, model.ID("C"))
	if got := emphases(optimistic); !slices.Equal(got, []float64{1, 0.5, 1}) {
		t.Fatalf("optimistic emphasis = %v", got)
	}

	f := v.Abandon(ctx, intent, store.Snapshot())
	if got := emphases(f); !slices.Equal(got, []float64{1, 0.5, 0.5}) {
		t.Errorf("emphasis after abandon = %v", got)
	}
	if v.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", v.Pending())
	}
	if _, ok := v.Resolve(ctx, intent, selection.FromKeys("A", "C")); ok {
		t.Error("an abandoned intent should not resolve")
	}
}

func TestVisualZeroViewport(t *testing.T) {
	ctx := context.Background()
	for _, mode := range model.Modes {
		t.Run(string(mode), func(t *testing.T) {
			v := newVisual(selection.PolicyRecompute)
			in := input(selection.Selection{})
			in.Viewport = model.Viewport{}
			in.Settings.Mode = mode
			f, err := v.Update(ctx, in)
			if err != nil {
				t.Fatal(err)
			}
			if f.Viewport != (model.Viewport{}) {
				t.Errorf("Viewport = %+v, want it kept empty", f.Viewport)
			}
			if len(f.Points) != 3 {
				t.Fatalf("points = %d, want 3", len(f.Points))
			}
			for _, p := range f.Points {
				if p.RenderedSize() != 0 {
					t.Errorf("%s size = %v, want 0", p.Identity().Key, p.RenderedSize())
				}
			}
		})
	}
}

func TestVisualNonFiniteValues(t *testing.T) {
	ctx := context.Background()
	points := samplePoints("A", "B", "C", "D")
	points[0].Value = model.Float(math.NaN())
	points[1].Value = model.Float(math.Inf(1))
	points[2].Value = model.Float(math.Inf(-1))

	for _, mode := range model.Modes {
		t.Run(string(mode), func(t *testing.T) {
			v := NewVisual(NewRunner(cache.NewMemoryCache(0), nil, nil), selection.Highlighter{}, nil)
			in := input(selection.Selection{})
			in.Points = points
			in.Settings.Mode = mode

			f, err := v.Update(ctx, in)
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if len(f.Points) != 4 {
				t.Fatalf("points = %d, want 4", len(f.Points))
			}
			for _, p := range f.Points {
				for _, c := range []float64{p.X, p.Y, p.RenderedSize()} {
					if math.IsNaN(c) || math.IsInf(c, 0) {
						t.Errorf("%s has non-finite geometry %+v", p.Identity().Key, p)
					}
				}
				if p.RenderedSize() <= 0 {
					t.Errorf("%s size = %v, want positive", p.Identity().Key, p.RenderedSize())
				}
			}

			// The layout round-trips through the cache.
			f, err = v.Update(ctx, in)
			if err != nil {
				t.Fatalf("second Update: %v", err)
			}
			if !f.CacheHit {
				t.Error("second update should hit the layout cache")
			}
		})
	}
}

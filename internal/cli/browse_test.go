package cli

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/imagewall/pkg/model"
	"github.com/matzehuels/imagewall/pkg/pipeline"
	"github.com/matzehuels/imagewall/pkg/selection"
)

func newTestBrowseModel(t *testing.T, mode model.Mode) browseModel {
	t.Helper()
	ctx := context.Background()
	points := []model.DataPoint{
		{Identity: model.ID("a"), Value: model.Float(4), ImageLowRes: "a.png", ImageHighRes: "a.png"},
		{Identity: model.ID("b"), Value: model.Float(2), ImageLowRes: "b.png", ImageHighRes: "b.png"},
		{Identity: model.ID("c"), Value: model.Float(1), ImageLowRes: "c.png", ImageHighRes: "c.png"},
	}
	settings := model.DefaultSettings()
	settings.Mode = mode
	s := &session{
		visual:   pipeline.NewVisual(nil, selection.Highlighter{}, nil),
		store:    selection.NewStore(),
		points:   points,
		viewport: model.Viewport{Width: 800, Height: 600},
		settings: settings,
	}
	frame, err := s.update(ctx)
	if err != nil {
		t.Fatal(err)
	}
	return newBrowseModel(ctx, s, frame)
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to m and runs the returned command to completion.
func send(m browseModel, msg tea.Msg) browseModel {
	next, cmd := m.Update(msg)
	m = next.(browseModel)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		next, cmd = m.Update(out)
		m = next.(browseModel)
	}
	return m
}

func emphasisOf(f *pipeline.Frame, key string) float64 {
	for _, p := range f.Points {
		if p.Identity().Key == key {
			return p.Emphasis
		}
	}
	return -1
}

func TestBrowseToggleRoundTrip(t *testing.T) {
	m := newTestBrowseModel(t, model.ModeCirclePackWeighted)

	// Optimistic frame first: only the toggled point is touched.
	next, cmd := m.Update(key(" "))
	m = next.(browseModel)
	if cmd == nil {
		t.Fatal("toggle should return a store command")
	}
	if m.session.visual.Pending() != 1 {
		t.Errorf("pending = %d, want 1", m.session.visual.Pending())
	}

	next, _ = m.Update(cmd())
	m = next.(browseModel)
	if got := m.session.store.Snapshot().Keys(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("selection = %v, want [a]", got)
	}
	if emphasisOf(m.frame, "a") != 1 || emphasisOf(m.frame, "b") != 0.5 {
		t.Errorf("emphasis a=%v b=%v", emphasisOf(m.frame, "a"), emphasisOf(m.frame, "b"))
	}

	m = send(m, key("c"))
	if !m.session.store.Snapshot().IsEmpty() {
		t.Error("selection not cleared")
	}
	if emphasisOf(m.frame, "b") != 1 {
		t.Errorf("emphasis after clear = %v, want 1", emphasisOf(m.frame, "b"))
	}
}

func TestBrowseStaleToggleAfterModeChange(t *testing.T) {
	m := newTestBrowseModel(t, model.ModeCirclePackWeighted)

	next, cmd := m.Update(key(" "))
	m = next.(browseModel)

	// Relayout before the store answers.
	m = send(m, key("m"))
	if m.frame.Mode != model.ModeCirclePackTopList {
		t.Fatalf("mode = %s, want circle-toplist", m.frame.Mode)
	}

	next, _ = m.Update(cmd())
	m = next.(browseModel)
	if !strings.Contains(m.status, "stale") {
		t.Errorf("status = %q, want stale notice", m.status)
	}
	if emphasisOf(m.frame, "b") != 1 {
		t.Error("stale toggle must not repaint the frame")
	}
}

func TestBrowseCursorMovement(t *testing.T) {
	m := newTestBrowseModel(t, model.ModeGrid)

	m = send(m, key("right"))
	if m.cursor != 1 {
		t.Errorf("cursor after right = %d, want 1", m.cursor)
	}
	m = send(m, key("up"))
	m = send(m, key("up"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamp at 0", m.cursor)
	}
	for range 10 {
		m = send(m, key("down"))
	}
	if m.cursor != len(m.frame.Points)-1 {
		t.Errorf("cursor = %d, want clamp at last point", m.cursor)
	}
}

func TestBrowseView(t *testing.T) {
	m := newTestBrowseModel(t, model.ModeGrid)
	view := m.View()
	for _, want := range []string{"imagewall", "a", "3 points", "grid"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newTestBrowseModel(t, model.ModeGrid)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestBrowseToggleFailureRestoresFrame(t *testing.T) {
	m := newTestBrowseModel(t, model.ModeGrid)
	m.cursor = 1
	m = send(m, key(" "))
	if emphasisOf(m.frame, "a") != 0.5 {
		t.Fatalf("emphasis a = %v, want 0.5 with b selected", emphasisOf(m.frame, "a"))
	}

	// The store rejects toggles once the context is done.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m.ctx = ctx
	m.cursor = 0

	next, cmd := m.Update(key(" "))
	m = next.(browseModel)
	if emphasisOf(m.frame, "a") != 1 {
		t.Fatalf("optimistic emphasis a = %v, want 1", emphasisOf(m.frame, "a"))
	}
	next, _ = m.Update(cmd())
	m = next.(browseModel)

	if !strings.Contains(m.status, "toggle failed") {
		t.Errorf("status = %q", m.status)
	}
	if m.session.visual.Pending() != 0 {
		t.Errorf("pending = %d, want 0", m.session.visual.Pending())
	}
	if emphasisOf(m.frame, "a") != 0.5 || emphasisOf(m.frame, "b") != 1 {
		t.Errorf("emphasis a=%v b=%v after failed toggle", emphasisOf(m.frame, "a"), emphasisOf(m.frame, "b"))
	}
}

package pipeline

import (
	"testing"

	"github.com/matzehuels/imagewall/pkg/errors"
	"github.com/matzehuels/imagewall/pkg/model"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %v", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode    model.Mode
		want    model.Mode
		wantErr bool
	}{
		{"grid", model.ModeGrid, false},
		{"circle", model.ModeCirclePackWeighted, false},
		{"circle-toplist", model.ModeCirclePackTopList, false},
		{"CIRCLETOPLIST", model.ModeCirclePackTopList, false},
		{"hexagon", "", true},
	}

	for _, tt := range tests {
		got, err := ValidateMode(tt.mode)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMode(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidMode) {
			t.Errorf("ValidateMode(%q) code = %v", tt.mode, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("ValidateMode(%q) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout: %v", err)
	}
	if opts.Settings != model.DefaultSettings() {
		t.Errorf("Settings = %+v, want defaults", opts.Settings)
	}
	if opts.Viewport != (model.Viewport{}) {
		t.Errorf("Viewport = %+v, want the empty viewport kept", opts.Viewport)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsClampSettings(t *testing.T) {
	opts := Options{
		Settings: model.Settings{MaxColumns: -2, ResolutionThreshold: -1, Mode: "GRID"},
		Viewport: model.Viewport{Width: -5, Height: 100},
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("ValidateForLayout: %v", err)
	}
	if opts.Settings.MaxColumns != 1 || opts.Settings.ResolutionThreshold != 0 || opts.Settings.Mode != model.ModeGrid {
		t.Errorf("Settings = %+v", opts.Settings)
	}
	if opts.Viewport.Width != 0 {
		t.Errorf("Viewport.Width = %v, want 0", opts.Viewport.Width)
	}
}

func TestOptionsUnknownMode(t *testing.T) {
	opts := Options{Settings: model.Settings{MaxColumns: 4, Mode: "hexagon"}}
	if err := opts.ValidateForLayout(); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("ValidateForLayout() = %v, want INVALID_MODE", err)
	}
}

func TestValidateForRenderDefaultsFormat(t *testing.T) {
	var opts Options
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("ValidateForRender: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
}

func TestComputeLayoutGrid(t *testing.T) {
	points := make([]model.DataPoint, 9)
	for i := range points {
		points[i] = model.DataPoint{
			Identity:     model.ID(string(rune('a' + i))),
			ImageLowRes:  "lo.png",
			ImageHighRes: "hi.png",
		}
	}
	opts := Options{
		Settings: model.Settings{MaxColumns: 4, ResolutionThreshold: 50, Mode: model.ModeGrid},
		Viewport: model.Viewport{Width: 400, Height: 400},
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	l := ComputeLayout(points, opts)
	if l.Columns != 4 || l.TotalHeight != 300 {
		t.Errorf("Columns = %d, TotalHeight = %v, want 4, 300", l.Columns, l.TotalHeight)
	}
	if l.Container != nil {
		t.Error("grid layout should have no container")
	}
	for _, p := range l.Points {
		if p.Image != "hi.png" {
			t.Errorf("point %d image = %q, want hi.png (side 100 > 50)", p.Index, p.Image)
		}
	}
}

func TestComputeLayoutPack(t *testing.T) {
	points := []model.DataPoint{
		{Identity: model.ID("a"), Value: model.Float(10), ImageLowRes: "a.png", ImageHighRes: "a-hq.png"},
		{Identity: model.ID("b"), Value: model.Float(1), ImageLowRes: "b.png", ImageHighRes: "b-hq.png"},
	}
	opts := Options{
		Settings: model.Settings{MaxColumns: 4, ResolutionThreshold: 200, Mode: model.ModeCirclePackWeighted},
		Viewport: model.Viewport{Width: 400, Height: 400},
	}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatal(err)
	}

	l := ComputeLayout(points, opts)
	if l.Container == nil {
		t.Fatal("pack layout should expose its container")
	}
	if len(l.Points) != 2 || len(l.Weights) != 2 {
		t.Fatalf("Points = %d, Weights = %d", len(l.Points), len(l.Weights))
	}
	for _, p := range l.Points {
		if p.Shape != model.ShapeCircle {
			t.Errorf("point %d shape = %v", p.Index, p.Shape)
		}
		want := p.Point.ImageLowRes
		if 2*p.Radius > 200 {
			want = p.Point.ImageHighRes
		}
		if p.Image != want {
			t.Errorf("point %d image = %q, want %q", p.Index, p.Image, want)
		}
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	opts := Options{}
	_ = opts.ValidateForLayout()
	l := ComputeLayout([]model.DataPoint{{Identity: model.ID("a"), ImageLowRes: "a.png"}}, opts)

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatal(err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Points) != 1 || got.Points[0].Identity() != model.ID("a") || got.Container == nil {
		t.Errorf("UnmarshalLayout() = %+v", got)
	}
}

package model

import (
	"math"
	"testing"
)

func TestIdentityMatches(t *testing.T) {
	tests := []struct {
		name string
		a, b Identity
		want bool
	}{
		{"same key", ID("a"), ID("a"), true},
		{"different key", ID("a"), ID("b"), false},
		{"both empty", ID(""), ID(""), false},
		{"empty left", ID(""), ID("a"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Matches(tt.b); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithImageFallback(t *testing.T) {
	tests := []struct {
		name     string
		in       DataPoint
		wantLow  string
		wantHigh string
	}{
		{"both bound", DataPoint{ImageLowRes: "lo", ImageHighRes: "hi"}, "lo", "hi"},
		{"only low", DataPoint{ImageLowRes: "lo"}, "lo", "lo"},
		{"only high", DataPoint{ImageHighRes: "hi"}, "hi", "hi"},
		{"none", DataPoint{}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.WithImageFallback()
			if got.ImageLowRes != tt.wantLow || got.ImageHighRes != tt.wantHigh {
				t.Errorf("WithImageFallback() = (%q, %q), want (%q, %q)",
					got.ImageLowRes, got.ImageHighRes, tt.wantLow, tt.wantHigh)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"grid", ModeGrid, false},
		{"GRID", ModeGrid, false},
		{"circle", ModeCirclePackWeighted, false},
		{"CIRCLE", ModeCirclePackWeighted, false},
		{"circle-toplist", ModeCirclePackTopList, false},
		{"CIRCLETOPLIST", ModeCirclePackTopList, false},
		{" Grid ", ModeGrid, false},
		{"treemap", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeNext(t *testing.T) {
	if got := ModeGrid.Next(); got != ModeCirclePackWeighted {
		t.Errorf("grid.Next() = %q", got)
	}
	if got := ModeCirclePackTopList.Next(); got != ModeGrid {
		t.Errorf("circle-toplist.Next() = %q", got)
	}
}

func TestSettingsNormalize(t *testing.T) {
	s := Settings{
		MaxColumns:          0,
		ResolutionThreshold: -5,
		Mode:                "bogus",
		TopListWeightFactor: math.NaN(),
	}.Normalize()

	if s.MaxColumns != 1 {
		t.Errorf("MaxColumns = %d, want 1", s.MaxColumns)
	}
	if s.ResolutionThreshold != 0 {
		t.Errorf("ResolutionThreshold = %v, want 0", s.ResolutionThreshold)
	}
	if s.Mode != DefaultMode {
		t.Errorf("Mode = %q, want %q", s.Mode, DefaultMode)
	}
	if s.TopListWeightFactor != 0 {
		t.Errorf("TopListWeightFactor = %v, want 0", s.TopListWeightFactor)
	}

	host := Settings{MaxColumns: 3, Mode: "CIRCLE"}.Normalize()
	if host.Mode != ModeCirclePackWeighted {
		t.Errorf("host mode name not resolved: %q", host.Mode)
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MaxColumns != 4 || s.ResolutionThreshold != 200 || s.Mode != ModeCirclePackTopList || s.TopListWeightFactor != 1 {
		t.Errorf("DefaultSettings() = %+v", s)
	}
	if s.Normalize() != s {
		t.Error("defaults should already be normalized")
	}
}

func TestPositionedPointGeometry(t *testing.T) {
	sq := PositionedPoint{Shape: ShapeSquare, X: 10, Y: 20, Side: 50}
	if got := sq.RenderedSize(); got != 50 {
		t.Errorf("square RenderedSize() = %v", got)
	}
	if got := sq.Bounds(); got != (Rect{X: 10, Y: 20, W: 50, H: 50}) {
		t.Errorf("square Bounds() = %+v", got)
	}

	c := PositionedPoint{Shape: ShapeCircle, X: 100, Y: 100, Radius: 25}
	if got := c.RenderedSize(); got != 50 {
		t.Errorf("circle RenderedSize() = %v", got)
	}
	if got := c.Bounds(); got != (Rect{X: 75, Y: 75, W: 50, H: 50}) {
		t.Errorf("circle Bounds() = %+v", got)
	}
}

func TestViewportNormalize(t *testing.T) {
	v := Viewport{Width: -1, Height: math.NaN()}.Normalize()
	if v.Width != 0 || v.Height != 0 {
		t.Errorf("Normalize() = %+v", v)
	}
	if !v.Empty() {
		t.Error("zero viewport should be empty")
	}
}

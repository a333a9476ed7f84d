package hover

import (
	"math"
	"testing"

	"github.com/matzehuels/imagewall/pkg/model"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func rectNear(a, b model.Rect) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.W, b.W) && near(a.H, b.H)
}

func TestEnlarge(t *testing.T) {
	tests := []struct {
		name string
		p    model.PositionedPoint
		want model.Rect
	}{
		{
			name: "grid cell",
			p:    model.PositionedPoint{Shape: model.ShapeSquare, X: 100, Y: 200, Side: 100},
			want: model.Rect{X: 90, Y: 190, W: 120, H: 120},
		},
		{
			name: "circle",
			p:    model.PositionedPoint{Shape: model.ShapeCircle, X: 50, Y: 50, Radius: 10},
			want: model.Rect{X: 36, Y: 36, W: 28, H: 28},
		},
		{
			name: "degenerate circle",
			p:    model.PositionedPoint{Shape: model.ShapeCircle, X: 5, Y: 5},
			want: model.Rect{X: 5, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Enlarge(tt.p); !rectNear(got, tt.want) {
				t.Errorf("Enlarge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResetRestoresBounds(t *testing.T) {
	points := []model.PositionedPoint{
		{Shape: model.ShapeSquare, X: 10, Y: 20, Side: 30},
		{Shape: model.ShapeCircle, X: 50, Y: 60, Radius: 7},
	}
	for _, p := range points {
		if got := Reset(p); got != p.Bounds() {
			t.Errorf("Reset(%v) = %+v, want %+v", p.Shape, got, p.Bounds())
		}
	}
}

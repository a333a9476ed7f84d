// Package grid tiles points into square cells.
//
// The column count is found by a greedy search: the smallest count in
// [1, maxColumns] whose rows fit the viewport height without vertical
// overflow wins. This favours taller cells over width utilization. When
// no count fits, maxColumns is used and the content overflows; the
// caller reads [Result.TotalHeight] to size a scrolling surface.
package grid

import (
	"math"

	"github.com/matzehuels/imagewall/pkg/model"
)

// Result is a computed grid layout.
type Result struct {
	Points      []model.PositionedPoint
	Columns     int
	Side        float64
	TotalHeight float64
}

// Columns returns the column count the engine picks for count points.
// maxColumns below 1 is treated as 1.
func Columns(count int, vp model.Viewport, maxColumns int) int {
	maxColumns = max(maxColumns, 1)
	vp = vp.Normalize()

	cols := 1
	for ; cols <= maxColumns; cols++ {
		side := vp.Width / float64(cols)
		rows := math.Ceil(float64(count) / float64(cols))
		if rows*side < vp.Height {
			break
		}
	}
	return min(max(cols, 1), maxColumns)
}

// Layout assigns every point a cell. Point i lands in column i mod columns
// and row i div columns; cells are squares of side width/columns.
func Layout(points []model.DataPoint, vp model.Viewport, maxColumns int) Result {
	if len(points) == 0 {
		return Result{}
	}
	vp = vp.Normalize()
	cols := Columns(len(points), vp, maxColumns)
	side := vp.Width / float64(cols)

	out := make([]model.PositionedPoint, len(points))
	maxRow := 0
	for i, p := range points {
		col := i % cols
		row := (i - col) / cols
		maxRow = max(maxRow, row)
		out[i] = model.PositionedPoint{
			Point:    p,
			Index:    i,
			Shape:    model.ShapeSquare,
			X:        side * float64(col),
			Y:        side * float64(row),
			Side:     side,
			Emphasis: 1,
		}
	}

	return Result{
		Points:      out,
		Columns:     cols,
		Side:        side,
		TotalHeight: float64(maxRow+1) * side,
	}
}

// Cell returns the (row, col) of a positioned square.
func Cell(p model.PositionedPoint) (row, col int) {
	if p.Side <= 0 {
		return 0, 0
	}
	return int(math.Round(p.Y / p.Side)), int(math.Round(p.X / p.Side))
}

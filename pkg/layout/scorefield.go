package layout

import (
	"math"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
)

// ScoreField samples a score grid at arbitrary world points.
// It is the packing stage's only view of scoring: C6 never recomputes
// IDW, it only reads the grid C4 already built.
type ScoreField struct {
	Grid *interpolate.Grid
}

// ValueAt snaps p to its nearest grid cell and returns that cell's
// value, or false if the grid is absent or the cell has no data.
func (f ScoreField) ValueAt(p geometry.Point) (float64, bool) {
	if f.Grid == nil {
		return 0, false
	}
	info := f.Grid.Info
	row, col := 0, 0
	if info.StepX != 0 {
		col = int(math.Round((p.X - info.MinX) / info.StepX))
	}
	if info.StepY != 0 {
		row = int(math.Round((p.Y - info.MinY) / info.StepY))
	}
	row = clampInt(row, 0, info.Resolution)
	col = clampInt(col, 0, info.Resolution)
	return f.Grid.At(row, col)
}

// AverageOver returns the mean of every defined cell whose world
// center lies inside polygon. If no cell center falls inside it (a
// polygon smaller than a grid cell), it falls back to the value at
// the polygon's centroid.
func (f ScoreField) AverageOver(polygon geometry.Polygon) (float64, bool) {
	if f.Grid == nil {
		return 0, false
	}
	info := f.Grid.Info
	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(polygon)
	colLo := clampInt(int(math.Floor((minX-info.MinX)/safeStep(info.StepX))), 0, info.Resolution)
	colHi := clampInt(int(math.Ceil((maxX-info.MinX)/safeStep(info.StepX))), 0, info.Resolution)
	rowLo := clampInt(int(math.Floor((minY-info.MinY)/safeStep(info.StepY))), 0, info.Resolution)
	rowHi := clampInt(int(math.Ceil((maxY-info.MinY)/safeStep(info.StepY))), 0, info.Resolution)

	var sum float64
	var count int
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			p := info.World(row, col)
			if !geometry.PointInPolygon(p, polygon) {
				continue
			}
			v, ok := f.Grid.At(row, col)
			if !ok {
				continue
			}
			sum += v
			count++
		}
	}
	if count == 0 {
		return f.ValueAt(geometry.Centroid(polygon))
	}
	return sum / float64(count), true
}

// SampleSegment evaluates n equally spaced points along [a,b]
// (inclusive of both ends) and returns their mean defined value.
func (f ScoreField) SampleSegment(a, b geometry.Point, n int) (float64, bool) {
	if n < 2 {
		n = 2
	}
	var sum float64
	var count int
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		p := geometry.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
		v, ok := f.ValueAt(p)
		if !ok {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func safeStep(step float64) float64 {
	if step == 0 {
		return 1
	}
	return step
}

package interpolate

import (
	"math"

	"github.com/dshills/panelplan/pkg/geometry"
)

// GridInfo describes the regular raster a Grid is sampled on: an
// origin, per-axis step, and resolution. Cell (row, col) sits at
// world coordinate (minX + col*stepX, minY + row*stepY). Rows index
// Y-ascending, columns index X-ascending.
type GridInfo struct {
	MinX, MinY   float64
	StepX, StepY float64
	Resolution   int
}

// World returns the world-space coordinate of grid cell (row, col).
func (gi GridInfo) World(row, col int) geometry.Point {
	return geometry.Point{
		X: gi.MinX + float64(col)*gi.StepX,
		Y: gi.MinY + float64(row)*gi.StepY,
	}
}

// NewGridInfo derives a GridInfo covering the polygon's bounding box
// at the given resolution (resolution+1 samples per axis).
func NewGridInfo(boundary geometry.Polygon, resolution int) GridInfo {
	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(boundary)
	r := float64(resolution)
	stepX, stepY := 0.0, 0.0
	if r > 0 {
		stepX = (maxX - minX) / r
		stepY = (maxY - minY) / r
	}
	return GridInfo{MinX: minX, MinY: minY, StepX: stepX, StepY: stepY, Resolution: resolution}
}

// Grid is a dense (resolution+1) x (resolution+1) raster of optional
// real values. A nil cell means "no data": outside the boundary
// polygon, or with no valid contributing borehole. "No data" is never
// encoded as a sentinel number.
type Grid struct {
	Info  GridInfo
	Cells [][]*float64 // Cells[row][col], row Y-ascending, col X-ascending
}

// NewGrid allocates an empty (all "no data") grid for info.
func NewGrid(info GridInfo) *Grid {
	n := info.Resolution + 1
	cells := make([][]*float64, n)
	for i := range cells {
		cells[i] = make([]*float64, n)
	}
	return &Grid{Info: info, Cells: cells}
}

// At returns the value at (row, col) and whether it is defined.
func (g *Grid) At(row, col int) (float64, bool) {
	c := g.Cells[row][col]
	if c == nil {
		return 0, false
	}
	return *c, true
}

// Set stores a defined value at (row, col).
func (g *Grid) Set(row, col int, v float64) {
	vv := v
	g.Cells[row][col] = &vv
}

// Stats summarizes the defined cells of a grid: min, max, mean and a
// 3-bucket histogram (low < 40, 40 <= medium < 70, high >= 70).
type Stats struct {
	Min, Max, Mean float64
	Count          int
	Histogram      Histogram
}

// Histogram buckets defined cell counts into three bands.
type Histogram struct {
	Low, Medium, High int
}

// ComputeStats scans every defined cell of g in row-major order (fixed
// iteration order, so concurrent producers still yield identical
// rounded statistics) and returns aggregate Stats.
func ComputeStats(g *Grid) Stats {
	var sum float64
	var count int
	min, max := math.Inf(1), math.Inf(-1)
	var hist Histogram

	for _, row := range g.Cells {
		for _, c := range row {
			if c == nil {
				continue
			}
			v := *c
			sum += v
			count++
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			switch {
			case v < 40:
				hist.Low++
			case v < 70:
				hist.Medium++
			default:
				hist.High++
			}
		}
	}

	if count == 0 {
		return Stats{Histogram: hist}
	}
	return Stats{
		Min:       min,
		Max:       max,
		Mean:      sum / float64(count),
		Count:     count,
		Histogram: hist,
	}
}

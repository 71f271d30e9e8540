package interpolate

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/panelplan/pkg/geometry"
)

// Power is the IDW exponent. The specification fixes p = 2.
const Power = 2.0

// nodeEpsilon is the distance below which a query is considered
// coincident with a sample: the sample's exact value is returned
// rather than a weighted sum, which also avoids division by zero.
const nodeEpsilon = 1e-6

// Sample is a scattered input point carrying one scalar value to be
// interpolated.
type Sample struct {
	Point geometry.Point
	Value float64
}

// AtPoint evaluates the IDW interpolant at query using samples,
// returning (value, true) or (0, false) for "no data". The caller must
// have already confirmed query lies inside the mask polygon; AtPoint
// itself performs no polygon test.
func AtPoint(query geometry.Point, samples []Sample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}

	var weightedSum, weightSum float64
	for _, s := range samples {
		d := math.Hypot(query.X-s.Point.X, query.Y-s.Point.Y)
		if d < nodeEpsilon {
			return s.Value, true
		}
		w := 1.0 / math.Pow(d, Power)
		weightedSum += s.Value * w
		weightSum += w
	}
	if weightSum == 0 {
		return 0, false
	}
	return weightedSum / weightSum, true
}

// FillGrid samples the IDW interpolant of samples at every cell of a
// grid described by info, masked by boundary: cells strictly outside
// boundary are left "no data". Output values are rounded to one
// decimal place; AtPoint itself is computed at full precision.
//
// Rows are filled independently and may run concurrently (see
// FillGridParallel); row-major iteration order is fixed so the
// rounded output is identical regardless of how rows were scheduled.
func FillGrid(info GridInfo, boundary geometry.Polygon, samples []Sample) *Grid {
	g := NewGrid(info)
	for row := 0; row <= info.Resolution; row++ {
		fillRow(g, row, boundary, samples)
	}
	return g
}

// FillGridParallel is equivalent to FillGrid but distributes rows
// across an errgroup, bounded by ctx. Because each row's result is
// independent of scheduling order, the rounded output is bit-identical
// to FillGrid's single-threaded reference.
func FillGridParallel(ctx context.Context, info GridInfo, boundary geometry.Polygon, samples []Sample) (*Grid, error) {
	g := NewGrid(info)
	eg, ctx := errgroup.WithContext(ctx)
	for row := 0; row <= info.Resolution; row++ {
		row := row
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			fillRow(g, row, boundary, samples)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

func fillRow(g *Grid, row int, boundary geometry.Polygon, samples []Sample) {
	for col := 0; col <= g.Info.Resolution; col++ {
		p := g.Info.World(row, col)
		if !geometry.PointInPolygon(p, boundary) {
			continue
		}
		v, ok := AtPoint(p, samples)
		if !ok {
			continue
		}
		g.Set(row, col, math.Round(v*10)/10)
	}
}

package contour

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
)

// Segment is one contour line segment, in the grid's world frame.
type Segment struct {
	P, Q geometry.Point
}

// corner indices into a 2x2 cell, matching the mask bit order:
// bit 0 = bottom-left, bit 1 = bottom-right, bit 2 = top-right,
// bit 3 = top-left.
type cellCorners struct {
	bl, br, tr, tl     float64
	blP, brP, trP, tlP geometry.Point
}

// Extract runs marching squares on g at a single iso-level and returns
// the raw (unstitched) segment list. Cells with any "no data" corner
// are skipped entirely.
func Extract(g *interpolate.Grid, level float64) []Segment {
	var segments []Segment
	res := g.Info.Resolution
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			c, ok := cellAt(g, i, j)
			if !ok {
				continue
			}
			segments = append(segments, cellSegments(c, level)...)
		}
	}
	return segments
}

// ExtractAll runs Extract for every level and returns a level->segments
// map.
func ExtractAll(g *interpolate.Grid, levels []float64) map[float64][]Segment {
	out := make(map[float64][]Segment, len(levels))
	for _, l := range levels {
		out[l] = Extract(g, l)
	}
	return out
}

// ExtractAllParallel is equivalent to ExtractAll but extracts each
// level concurrently via an errgroup, bounded by ctx. Per-cell
// iteration within a level is always row-major, so the result is
// identical to ExtractAll regardless of level scheduling order.
func ExtractAllParallel(ctx context.Context, g *interpolate.Grid, levels []float64) (map[float64][]Segment, error) {
	results := make([][]Segment, len(levels))
	eg, ctx := errgroup.WithContext(ctx)
	for idx, level := range levels {
		idx, level := idx, level
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			results[idx] = Extract(g, level)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	out := make(map[float64][]Segment, len(levels))
	for idx, level := range levels {
		out[level] = results[idx]
	}
	return out, nil
}

func cellAt(g *interpolate.Grid, i, j int) (cellCorners, bool) {
	bl, blOK := g.At(i, j)
	br, brOK := g.At(i, j+1)
	tr, trOK := g.At(i+1, j+1)
	tl, tlOK := g.At(i+1, j)
	if !blOK || !brOK || !trOK || !tlOK {
		return cellCorners{}, false
	}
	return cellCorners{
		bl: bl, br: br, tr: tr, tl: tl,
		blP: g.Info.World(i, j),
		brP: g.Info.World(i, j+1),
		trP: g.Info.World(i+1, j+1),
		tlP: g.Info.World(i+1, j),
	}, true
}

// cellSegments emits the 0, 1 or 2 segments for one cell at level,
// per the 16-case marching-squares table.
func cellSegments(c cellCorners, level float64) []Segment {
	mask := 0
	if c.bl >= level {
		mask |= 1
	}
	if c.br >= level {
		mask |= 2
	}
	if c.tr >= level {
		mask |= 4
	}
	if c.tl >= level {
		mask |= 8
	}

	bottom := func() geometry.Point { return lerpEdge(c.blP, c.brP, c.bl, c.br, level) }
	right := func() geometry.Point { return lerpEdge(c.brP, c.trP, c.br, c.tr, level) }
	top := func() geometry.Point { return lerpEdge(c.tlP, c.trP, c.tl, c.tr, level) }
	left := func() geometry.Point { return lerpEdge(c.blP, c.tlP, c.bl, c.tl, level) }

	switch mask {
	case 0, 15:
		return nil
	case 1:
		return []Segment{{P: left(), Q: bottom()}}
	case 2:
		return []Segment{{P: bottom(), Q: right()}}
	case 3:
		return []Segment{{P: left(), Q: right()}}
	case 4:
		return []Segment{{P: right(), Q: top()}}
	case 5:
		return []Segment{{P: left(), Q: bottom()}, {P: right(), Q: top()}}
	case 6:
		return []Segment{{P: bottom(), Q: top()}}
	case 7:
		return []Segment{{P: left(), Q: top()}}
	case 8:
		return []Segment{{P: top(), Q: left()}}
	case 9:
		return []Segment{{P: bottom(), Q: top()}}
	case 10:
		return []Segment{{P: bottom(), Q: left()}, {P: top(), Q: right()}}
	case 11:
		return []Segment{{P: right(), Q: top()}}
	case 12:
		return []Segment{{P: left(), Q: right()}}
	case 13:
		return []Segment{{P: bottom(), Q: right()}}
	case 14:
		return []Segment{{P: left(), Q: bottom()}}
	default:
		return nil
	}
}

// lerpEdge linearly interpolates along the edge from a (value va) to
// b (value vb) for the crossing at level.
func lerpEdge(a, b geometry.Point, va, vb, level float64) geometry.Point {
	if vb == va {
		return a
	}
	t := (level - va) / (vb - va)
	return geometry.Point{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}

// SortedLevels returns the levels of m in ascending order, useful for
// deterministic iteration/export.
func SortedLevels(m map[float64][]Segment) []float64 {
	levels := make([]float64, 0, len(m))
	for l := range m {
		levels = append(levels, l)
	}
	sort.Float64s(levels)
	return levels
}

package contour

import (
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
)

// S7: z(x,y) = x + y over [0,100]^2, iso-level 50.
func TestScenarioS7ContourRoundTrip(t *testing.T) {
	info := interpolate.GridInfo{MinX: 0, MinY: 0, StepX: 10, StepY: 10, Resolution: 10}
	g := interpolate.NewGrid(info)
	for row := 0; row <= info.Resolution; row++ {
		for col := 0; col <= info.Resolution; col++ {
			p := info.World(row, col)
			g.Set(row, col, p.X+p.Y)
		}
	}

	segments := Extract(g, 50)
	if len(segments) == 0 {
		t.Fatal("expected at least one segment at level 50")
	}
	for _, s := range segments {
		for _, p := range []geometry.Point{s.P, s.Q} {
			if math.Abs(p.X+p.Y-50) > 1e-6 {
				t.Errorf("segment endpoint %v does not satisfy x+y=50", p)
			}
		}
	}
}

func TestExtractSkipsCellsWithNoData(t *testing.T) {
	info := interpolate.GridInfo{MinX: 0, MinY: 0, StepX: 1, StepY: 1, Resolution: 2}
	g := interpolate.NewGrid(info)
	g.Set(0, 0, 0)
	g.Set(0, 1, 100)
	g.Set(1, 0, 0)
	g.Set(1, 1, 100)
	// (2, *) row left entirely undefined: cells touching it must be skipped.
	segments := Extract(g, 50)
	for _, s := range segments {
		if s.P.Y > 1 || s.Q.Y > 1 {
			t.Errorf("segment touches undefined row: %+v", s)
		}
	}
}

func TestContourLevelProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		res := rapid.IntRange(2, 8).Draw(rt, "res")
		info := interpolate.GridInfo{MinX: 0, MinY: 0, StepX: 1, StepY: 1, Resolution: res}
		g := interpolate.NewGrid(info)
		for row := 0; row <= res; row++ {
			for col := 0; col <= res; col++ {
				p := info.World(row, col)
				g.Set(row, col, p.X*2+p.Y)
			}
		}
		level := rapid.Float64Range(0, float64(res)*3).Draw(rt, "level")
		for _, s := range Extract(g, level) {
			for _, p := range []geometry.Point{s.P, s.Q} {
				got := p.X*2 + p.Y
				if math.Abs(got-level) > 1e-6 {
					rt.Fatalf("segment endpoint %v evaluates to %v, want level %v", p, got, level)
				}
			}
		}
	})
}

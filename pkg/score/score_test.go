package score

import (
	"context"
	"math"
	"testing"

	"pgregory.net/rapid"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
)

func rect(w, h float64) geometry.Polygon {
	return geometry.Polygon{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

// S1: Single-borehole rectangle, equal weights.
// Per the documented formulas: safety=100 (gasContent=0, and a
// borehole with no non-coal layer uses the safety-optimum rock
// hardness of 7 rather than the generic attribute default of 5 — see
// geology.neutralRockHardness), economic=65 (20+15*3), env=100 (no
// ground water). The equal-weight composite is the unweighted mean of
// the three rounded per-dimension scores, (100+65+100)/3 = 88.3, not
// the 88.5 spec.md's worked example states (which averages the
// unrounded dimension values before rounding once).
func TestScenarioS1Scores(t *testing.T) {
	boundary := rect(100, 100)
	boreholes := []*geology.Borehole{
		{ID: "B1", Point: geometry.Point{X: 50, Y: 50}, Layers: []geology.Layer{{Name: "煤", Thickness: 3.0}}},
	}
	model, err := geology.Build(context.Background(), boundary, boreholes, 10, geology.CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bundle, err := Build(context.Background(), model, boundary, Weights{Safety: 1, Economic: 1, Env: 1}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bs := bundle.PerBorehole[0]
	if bs.Safety != 100 {
		t.Errorf("expected safety 100, got %v", bs.Safety)
	}
	if bs.Economic != 65 {
		t.Errorf("expected economic 65, got %v", bs.Economic)
	}
	if bs.Env != 100 {
		t.Errorf("expected env 100, got %v", bs.Env)
	}
	if math.Abs(bs.Composite-88.3) > 1e-9 {
		t.Errorf("expected composite 88.3, got %v", bs.Composite)
	}

	// All four grids must be constant at the single borehole's values
	// everywhere they are defined.
	for row := 0; row <= bundle.Resolution; row++ {
		for col := 0; col <= bundle.Resolution; col++ {
			if v, ok := bundle.SafetyGrid.At(row, col); ok && v != 100 {
				t.Errorf("safety grid not constant at (%d,%d): %v", row, col, v)
			}
		}
	}
}

func TestScoreBoundsProperty(t *testing.T) {
	boundary := rect(500, 500)
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "n")
		boreholes := make([]*geology.Borehole, n)
		for i := range boreholes {
			gas := rapid.Float64Range(0, 30).Draw(rt, "gas")
			hardness := rapid.Float64Range(0, 15).Draw(rt, "hardness")
			thickness := rapid.Float64Range(0, 10).Draw(rt, "thickness")
			water := rapid.Float64Range(0, 200).Draw(rt, "water")
			boreholes[i] = &geology.Borehole{
				ID:    "B",
				Point: geometry.Point{X: rapid.Float64Range(10, 490).Draw(rt, "x"), Y: rapid.Float64Range(10, 490).Draw(rt, "y")},
				Attributes: &geology.Attributes{
					RockHardness:  hardness,
					GasContent:    gas,
					CoalThickness: thickness,
					GroundWater:   water,
				},
			}
		}
		model, err := geology.Build(context.Background(), boundary, boreholes, 8, geology.CoalSeamSelection{}, nil)
		if err != nil {
			rt.Fatalf("unexpected geology error: %v", err)
		}
		bundle, err := Build(context.Background(), model, boundary, Weights{Safety: 1, Economic: 1, Env: 1}, nil)
		if err != nil {
			rt.Fatalf("unexpected score error: %v", err)
		}
		for _, bs := range bundle.PerBorehole {
			for _, v := range []float64{bs.Safety, bs.Economic, bs.Env, bs.Composite} {
				if v < 0 || v > 100 {
					rt.Fatalf("score out of bounds: %v", v)
				}
			}
		}
	})
}

func TestWeightInvarianceProperty(t *testing.T) {
	boundary := rect(300, 300)
	boreholes := []*geology.Borehole{
		{ID: "B1", Point: geometry.Point{X: 50, Y: 50}, Attributes: &geology.Attributes{RockHardness: 6, GasContent: 2, CoalThickness: 4, GroundWater: 10}},
		{ID: "B2", Point: geometry.Point{X: 250, Y: 250}, Attributes: &geology.Attributes{RockHardness: 8, GasContent: 5, CoalThickness: 2, GroundWater: 30}},
	}
	model, err := geology.Build(context.Background(), boundary, boreholes, 8, geology.CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := Weights{Safety: 1, Economic: 2, Env: 3}
	baseBundle, err := Build(context.Background(), model, boundary, base, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rapid.Check(t, func(rt *rapid.T) {
		scale := rapid.Float64Range(0.1, 10).Draw(rt, "scale")
		scaled := Weights{Safety: base.Safety * scale, Economic: base.Economic * scale, Env: base.Env * scale}
		scaledBundle, err := Build(context.Background(), model, boundary, scaled, nil)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		for i := range baseBundle.PerBorehole {
			a := baseBundle.PerBorehole[i].Composite
			b := scaledBundle.PerBorehole[i].Composite
			if math.Abs(a-b) > 1e-6 {
				rt.Fatalf("composite changed under weight scaling: %v != %v", a, b)
			}
		}
	})
}

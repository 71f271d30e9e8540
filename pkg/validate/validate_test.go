package validate

import (
	"context"
	"math"
	"testing"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/layout"
	"github.com/dshills/panelplan/pkg/score"
)

func rectBoundary(w, h float64) geometry.Polygon {
	return geometry.Polygon{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

func buildSamplePlan(t *testing.T) (*layout.Plan, *geology.Model, geometry.Polygon) {
	t.Helper()
	boundary := rectBoundary(1000, 600)
	boreholes := []*geology.Borehole{
		{ID: "B1", Point: geometry.Point{X: 100, Y: 100}, Attributes: &geology.Attributes{RockHardness: 6, GasContent: 2, CoalThickness: 4, GroundWater: 10}},
		{ID: "B2", Point: geometry.Point{X: 900, Y: 100}, Attributes: &geology.Attributes{RockHardness: 7, GasContent: 3, CoalThickness: 5, GroundWater: 15}},
		{ID: "B3", Point: geometry.Point{X: 500, Y: 500}, Attributes: &geology.Attributes{RockHardness: 6.5, GasContent: 2.5, CoalThickness: 4.5, GroundWater: 12}},
	}

	model, err := geology.Build(context.Background(), boundary, boreholes, 20, geology.CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("geology.Build: %v", err)
	}

	bundle, err := score.Build(context.Background(), model, boundary, score.Weights{Safety: 1, Economic: 1, Env: 1}, nil)
	if err != nil {
		t.Fatalf("score.Build: %v", err)
	}
	grid, _ := bundle.GridFor("composite")

	params := layout.DeriveParams(model, boundary, layout.Overrides{})
	plan, err := layout.Build(boundary, params, layout.ScoreField{Grid: grid}, nil)
	if err != nil {
		t.Fatalf("layout.Build: %v", err)
	}
	if len(plan.Panels) == 0 {
		t.Fatal("expected at least one panel")
	}
	return plan, model, boundary
}

func TestValidateProducesGradedPanels(t *testing.T) {
	plan, model, boundary := buildSamplePlan(t)
	result := Validate(plan, model, boundary)

	if len(result.Panels) != len(plan.Panels) {
		t.Fatalf("expected %d panel results, got %d", len(plan.Panels), len(result.Panels))
	}
	for _, pr := range result.Panels {
		if pr.Total < 0 || pr.Total > 100.0001 {
			t.Errorf("panel %s total out of bounds: %v", pr.PanelID, pr.Total)
		}
		if math.Abs(pr.Factors.Total()-pr.Total) > 1e-9 {
			t.Errorf("panel %s total does not match factor sum", pr.PanelID)
		}
	}
	if result.OverallScore < 0 || result.OverallScore > 100.0001 {
		t.Errorf("overall score out of bounds: %v", result.OverallScore)
	}
}

func TestPillarSpacingWithinTolerance(t *testing.T) {
	plan, _, _ := buildSamplePlan(t)
	pivot := geometry.Centroid(rectBoundary(1000, 600))
	measurements := MeasurePillars(plan.Panels, plan.Params.PillarWidth, plan.Params.FrameAngle, pivot)
	for _, m := range measurements {
		if m.OutOfTolerance {
			t.Errorf("expected measured spacing %v to match designed %v within tolerance", m.Measured, m.Designed)
		}
	}
}

func TestVetoOnHighGasAndDepth(t *testing.T) {
	factors := PanelFactors{Safety: 15, Economic: 10, GeologicalUniformity: 18, TechnicalFit: 12, Efficiency: 9, Ventilation: 8, Transport: 4, Environmental: 4}
	reasons := vetoReasons(factors, 20, 600, 1.0)
	if len(reasons) == 0 {
		t.Fatal("expected a veto for gas>15 and depth>500")
	}
}

func TestVetoOnLowSafety(t *testing.T) {
	factors := PanelFactors{Safety: 5}
	reasons := vetoReasons(factors, 0, 0, 1.0)
	if len(reasons) == 0 {
		t.Fatal("expected a veto for safety subtotal below 10")
	}
}

func TestGradeThresholds(t *testing.T) {
	cases := []struct {
		total float64
		want  Grade
	}{
		{95, GradeAPlus},
		{85, GradeA},
		{75, GradeBPlus},
		{65, GradeB},
		{55, GradeC},
		{30, GradeD},
	}
	for _, c := range cases {
		if got := GradeFor(c.total); got != c.want {
			t.Errorf("GradeFor(%v) = %v, want %v", c.total, got, c.want)
		}
	}
}

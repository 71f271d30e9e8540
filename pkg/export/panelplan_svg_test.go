package export_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/dshills/panelplan/pkg/export"
	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/layout"
	"github.com/dshills/panelplan/pkg/panelplan"
	"github.com/dshills/panelplan/pkg/score"
)

func buildSamplePlan(t *testing.T) (*panelplan.DesignResult, geometry.Polygon, *panelplan.Pipeline) {
	t.Helper()
	boundary := geometry.Polygon{{X: 0, Y: 0}, {X: 800, Y: 0}, {X: 800, Y: 400}, {X: 0, Y: 400}}
	boreholes := []*geology.Borehole{
		{ID: "B1", Point: geometry.Point{X: 200, Y: 200}, Attributes: &geology.Attributes{RockHardness: 5, GasContent: 1, CoalThickness: 4, GroundWater: 5}},
		{ID: "B2", Point: geometry.Point{X: 600, Y: 200}, Attributes: &geology.Attributes{RockHardness: 5, GasContent: 1, CoalThickness: 4, GroundWater: 5}},
	}

	p := panelplan.NewPipeline()
	ctx := context.Background()
	if _, err := p.BuildGeology(ctx, "svg", boundary, boreholes, 20, geology.CoalSeamSelection{}); err != nil {
		t.Fatalf("BuildGeology: %v", err)
	}
	if _, err := p.Score(ctx, "svg", score.Weights{Safety: 1, Economic: 1, Env: 1}, 20); err != nil {
		t.Fatalf("Score: %v", err)
	}
	result, err := p.Plan(ctx, "svg", "composite", layout.Overrides{Direction: layout.DirectionBoundary}, nil)
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	return result, boundary, p
}

func TestExportPlanSVG(t *testing.T) {
	result, boundary, _ := buildSamplePlan(t)

	opts := export.DefaultPlanSVGOptions()
	opts.Title = "Test Plan"

	data, err := export.ExportPlanSVG(result, boundary, opts)
	if err != nil {
		t.Fatalf("ExportPlanSVG: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("expected output to contain an <svg> element")
	}
	if !bytes.Contains(data, []byte("Test Plan")) {
		t.Error("expected output to contain the configured title")
	}
	if len(result.Panels) > 0 && !bytes.Contains(data, []byte(result.Panels[0].ID)) {
		t.Errorf("expected output to label panel %s", result.Panels[0].ID)
	}
}

func TestExportPlanSVGNilResult(t *testing.T) {
	if _, err := export.ExportPlanSVG(nil, geometry.Polygon{}, export.DefaultPlanSVGOptions()); err == nil {
		t.Fatal("expected an error for a nil result")
	}
}

func TestSavePlanSVGToFile(t *testing.T) {
	result, boundary, _ := buildSamplePlan(t)
	dir := t.TempDir()
	path := dir + "/plan.svg"

	if err := export.SavePlanSVGToFile(result, boundary, path, export.DefaultPlanSVGOptions()); err != nil {
		t.Fatalf("SavePlanSVGToFile: %v", err)
	}
}

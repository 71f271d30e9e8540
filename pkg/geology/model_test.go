package geology

import (
	"context"
	"math"
	"testing"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/pperrors"
)

func rectBoundary(w, h float64) geometry.Polygon {
	return geometry.Polygon{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}
}

// S1: Single-borehole rectangle.
func TestScenarioS1SingleBorehole(t *testing.T) {
	boundary := rectBoundary(100, 100)
	boreholes := []*Borehole{
		{
			ID:    "B1",
			Point: geometry.Point{X: 50, Y: 50},
			Layers: []Layer{
				{Name: "煤", Thickness: 3.0},
			},
		},
	}

	model, err := Build(context.Background(), boundary, boreholes, 10, CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(model.AvgThickness-3.0) > 1e-9 {
		t.Errorf("expected avgThickness 3.0, got %v", model.AvgThickness)
	}
	if model.DipAngle != 0 {
		t.Errorf("expected dipAngle 0 for a single point, got %v", model.DipAngle)
	}
}

// S2: Flat plane — four corner boreholes at the same top elevation.
func TestScenarioS2FlatPlane(t *testing.T) {
	boundary := rectBoundary(400, 400)
	mk := func(id string, x, y float64) *Borehole {
		top := -100.0
		return &Borehole{ID: id, Point: geometry.Point{X: x, Y: y}, Attributes: &Attributes{
			TopElevation: &top,
		}}
	}
	boreholes := []*Borehole{
		mk("B1", 0, 0), mk("B2", 400, 0), mk("B3", 0, 400), mk("B4", 400, 400),
	}

	model, err := Build(context.Background(), boundary, boreholes, 10, CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.DipAngle > 0.1 {
		t.Errorf("expected dipAngle <= 0.1 for a flat plane, got %v", model.DipAngle)
	}
}

// S3: Tilted plane — dip toward +Y.
func TestScenarioS3TiltedPlane(t *testing.T) {
	boundary := rectBoundary(400, 400)
	mk := func(id string, x, y, top float64) *Borehole {
		t := top
		return &Borehole{ID: id, Point: geometry.Point{X: x, Y: y}, Attributes: &Attributes{TopElevation: &t}}
	}
	boreholes := []*Borehole{
		mk("B1", 0, 0, -100),
		mk("B2", 400, 0, -100),
		mk("B3", 0, 400, -120),
		mk("B4", 400, 400, -120),
	}

	model, err := Build(context.Background(), boundary, boreholes, 10, CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(model.DipDirection-90) > 1 {
		t.Errorf("expected dipDirection ~= 90, got %v", model.DipDirection)
	}
	wantDip := math.Atan(20.0/400.0) * 180 / math.Pi
	if math.Abs(model.DipAngle-wantDip) > 0.1 {
		t.Errorf("expected dipAngle ~= %v, got %v", wantDip, model.DipAngle)
	}
	if math.Abs(model.Strike-180) > 1 {
		t.Errorf("expected strike ~= 180, got %v", model.Strike)
	}
}

// When every borehole fails to resolve a coal seam, Build reports
// NoValidBorehole rather than surfacing the last borehole's own
// NoCoalFound/CoalSeamNotFound error.
func TestNoCoalFound(t *testing.T) {
	boundary := rectBoundary(100, 100)
	boreholes := []*Borehole{
		{ID: "B1", Point: geometry.Point{X: 50, Y: 50}, Layers: []Layer{{Name: "砂岩", Thickness: 5}}},
	}
	_, err := Build(context.Background(), boundary, boreholes, 10, CoalSeamSelection{}, nil)
	if !pperrors.Is(err, pperrors.NoValidBorehole) {
		t.Fatalf("expected NoValidBorehole error, got %v", err)
	}
}

func TestCoalSeamNotFoundForAllBoreholes(t *testing.T) {
	boundary := rectBoundary(100, 100)
	boreholes := []*Borehole{
		{ID: "B1", Point: geometry.Point{X: 50, Y: 50}, Layers: []Layer{{Name: "1号煤", Thickness: 2}, {Name: "2号煤", Thickness: 3}}},
	}
	_, err := Build(context.Background(), boundary, boreholes, 10, CoalSeamSelection{Explicit: "3号"}, nil)
	if !pperrors.Is(err, pperrors.NoValidBorehole) {
		t.Fatalf("expected NoValidBorehole error, got %v", err)
	}
}

// Process itself still reports CoalSeamNotFound with the available
// coal names attached, for callers that resolve one borehole directly
// rather than going through Build.
func TestCoalSeamNotFoundCarriesAvailableNames(t *testing.T) {
	b := &Borehole{
		ID:    "B1",
		Point: geometry.Point{X: 50, Y: 50},
		Layers: []Layer{
			{Name: "1号煤", Thickness: 2},
			{Name: "2号煤", Thickness: 3},
		},
	}
	_, err := Process(b, CoalSeamSelection{Explicit: "3号"}, nil)
	if !pperrors.Is(err, pperrors.CoalSeamNotFound) {
		t.Fatalf("expected CoalSeamNotFound error, got %v", err)
	}
	var pe *pperrors.Error
	if e, ok := err.(*pperrors.Error); ok {
		pe = e
	} else {
		t.Fatalf("expected *pperrors.Error, got %T", err)
	}
	names, ok := pe.Details.([]string)
	if !ok || len(names) != 2 {
		t.Fatalf("expected 2 available coal names in Details, got %v", pe.Details)
	}
}

// A borehole that fails to resolve a coal seam is skipped, with a
// warning recorded, while the rest of the model builds normally from
// the boreholes that do resolve.
func TestPartiallyInvalidBoreholesAreSkippedNotFatal(t *testing.T) {
	boundary := rectBoundary(200, 200)
	boreholes := []*Borehole{
		{ID: "B1", Point: geometry.Point{X: 50, Y: 50}, Layers: []Layer{{Name: "砂岩", Thickness: 5}}},
		{ID: "B2", Point: geometry.Point{X: 150, Y: 150}, Layers: []Layer{{Name: "煤", Thickness: 3}}},
	}
	model, err := Build(context.Background(), boundary, boreholes, 10, CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(model.Processed) != 1 {
		t.Fatalf("expected 1 resolved borehole, got %d", len(model.Processed))
	}
	if len(model.Warnings) == 0 {
		t.Fatal("expected a warning recorded for the skipped borehole")
	}
}

func TestThicknessIdentityProperty(t *testing.T) {
	boundary := rectBoundary(300, 300)
	mk := func(id string, x, y, top, bottom float64) *Borehole {
		tp, bt := top, bottom
		return &Borehole{ID: id, Point: geometry.Point{X: x, Y: y}, Attributes: &Attributes{TopElevation: &tp, BottomElevation: &bt}}
	}
	boreholes := []*Borehole{
		mk("B1", 0, 0, -100, -103),
		mk("B2", 300, 0, -110, -114),
		mk("B3", 0, 300, -90, -92),
		mk("B4", 300, 300, -95, -99),
	}
	model, err := Build(context.Background(), boundary, boreholes, 15, CoalSeamSelection{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for row := 0; row <= model.GridInfo.Resolution; row++ {
		for col := 0; col <= model.GridInfo.Resolution; col++ {
			top, topOK := model.TopGrid.At(row, col)
			bottom, bottomOK := model.BottomGrid.At(row, col)
			thickness, thicknessOK := model.ThicknessGrid.At(row, col)
			if topOK && bottomOK {
				if !thicknessOK {
					t.Fatalf("thickness undefined at (%d,%d) though top/bottom defined", row, col)
				}
				if math.Abs(thickness-math.Abs(top-bottom)) > 1e-9 {
					t.Errorf("thickness identity violated at (%d,%d): %v != |%v-%v|", row, col, thickness, top, bottom)
				}
			}
		}
	}
}

package layout

import (
	"testing"

	"github.com/dshills/panelplan/pkg/geology"
)

func TestDeriveParams_NoOverrides_UsesFormulaDefaults(t *testing.T) {
	model := &geology.Model{AvgDepth: 400, AvgThickness: 3, DipAngle: 0}
	boundary := rect(1000, 500)

	params := DeriveParams(model, boundary, Overrides{})

	wantWp := derivePillarWidth(model.AvgDepth, model.AvgThickness, model.DipAngle)
	wantWf := derivePanelWidth(model.AvgDepth, model.AvgThickness, model.DipAngle)
	if params.PillarWidth != wantWp {
		t.Errorf("PillarWidth = %v, want formula default %v", params.PillarWidth, wantWp)
	}
	if params.PanelWidth != wantWf {
		t.Errorf("PanelWidth = %v, want formula default %v", params.PanelWidth, wantWf)
	}
}

func TestDeriveParams_OverridesWithinBand_PassThrough(t *testing.T) {
	model := &geology.Model{AvgDepth: 400, AvgThickness: 3, DipAngle: 0}
	boundary := rect(1000, 500)
	pw, fw := 28.0, 220.0

	params := DeriveParams(model, boundary, Overrides{PillarWidth: &pw, PanelWidth: &fw})

	if params.PillarWidth != pw {
		t.Errorf("PillarWidth = %v, want %v", params.PillarWidth, pw)
	}
	if params.PanelWidth != fw {
		t.Errorf("PanelWidth = %v, want %v", params.PanelWidth, fw)
	}
}

// Overrides outside the valid bands must still be clamped, per
// spec.md's override rule: a caller-supplied PillarWidth/PanelWidth
// replaces the formula-derived value but is clamped to the same
// [20,35]/[100,300] bands the formula itself is clamped to.
func TestDeriveParams_OverridesOutsideBand_AreClamped(t *testing.T) {
	model := &geology.Model{AvgDepth: 400, AvgThickness: 3, DipAngle: 0}
	boundary := rect(1000, 500)

	lowPw, highPw := 5.0, 90.0
	lowFw, highFw := 10.0, 900.0

	low := DeriveParams(model, boundary, Overrides{PillarWidth: &lowPw, PanelWidth: &lowFw})
	if low.PillarWidth != 20 {
		t.Errorf("PillarWidth = %v, want clamped to 20", low.PillarWidth)
	}
	if low.PanelWidth != 100 {
		t.Errorf("PanelWidth = %v, want clamped to 100", low.PanelWidth)
	}

	high := DeriveParams(model, boundary, Overrides{PillarWidth: &highPw, PanelWidth: &highFw})
	if high.PillarWidth != 35 {
		t.Errorf("PillarWidth = %v, want clamped to 35", high.PillarWidth)
	}
	if high.PanelWidth != 300 {
		t.Errorf("PanelWidth = %v, want clamped to 300", high.PanelWidth)
	}
}

func TestDeriveParams_OtherOverridesPassThroughUnclamped(t *testing.T) {
	model := &geology.Model{AvgDepth: 400, AvgThickness: 3, DipAngle: 0}
	boundary := rect(1000, 500)
	margin, roadway, minScore := 50.0, 8.0, 70.0

	params := DeriveParams(model, boundary, Overrides{
		BoundaryMargin: &margin,
		RoadwayWidth:   &roadway,
		MinScore:       &minScore,
	})

	if params.BoundaryMargin != margin {
		t.Errorf("BoundaryMargin = %v, want %v", params.BoundaryMargin, margin)
	}
	if params.RoadwayWidth != roadway {
		t.Errorf("RoadwayWidth = %v, want %v", params.RoadwayWidth, roadway)
	}
	if params.MinScore != minScore {
		t.Errorf("MinScore = %v, want %v", params.MinScore, minScore)
	}
}

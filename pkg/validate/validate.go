package validate

import (
	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/layout"
)

// Validate runs C7 end-to-end over a completed layout.Plan: measures
// pillar compliance, scores and grades every panel (vetoing those
// that fail a hard rule), and rolls the panel scores up into an
// overall design score. boundary is the same polygon the plan was
// built against, needed to recover the packing-frame pivot.
func Validate(plan *layout.Plan, model *geology.Model, boundary geometry.Polygon) *Result {
	pivot := geometry.Centroid(boundary)
	measurements := MeasurePillars(plan.Panels, plan.Params.PillarWidth, plan.Params.FrameAngle, pivot)

	result := &Result{PillarMeasurements: measurements}
	result.Warnings = append(result.Warnings, pillarWarnings(measurements)...)

	pillarRatios := pillarRatioByPanel(measurements, plan.Params.PillarWidth)

	var totalScore float64
	var totalArea float64
	for _, panel := range plan.Panels {
		factors := scorePanel(panel, model, plan.Params, plan.Roadways)
		total := factors.Total()

		nearest := nearestProcessed(model, panel.Center)
		gasContent := geology.DefaultGasContent
		depth := model.AvgDepth
		if nearest != nil {
			gasContent = nearest.Attrs.GasContent
			if nearest.Attrs.Depth != nil {
				depth = *nearest.Attrs.Depth
			}
		}

		ratio, hasRatio := pillarRatios[panel.ID]
		if !hasRatio {
			ratio = 1
		}

		reasons := vetoReasons(factors, gasContent, depth, ratio)

		result.Panels = append(result.Panels, PanelResult{
			PanelID:     panel.ID,
			Factors:     factors,
			Total:       total,
			Grade:       GradeFor(total),
			Vetoed:      len(reasons) > 0,
			VetoReasons: reasons,
		})

		totalScore += total
		totalArea += panel.Area
	}

	result.OverallScore = overallScore(totalScore, len(plan.Panels), totalArea)
	return result
}

// overallScore implements 0.7*meanPanelScore + 0.3*min(100, totalArea/1000).
func overallScore(totalScore float64, panelCount int, totalArea float64) float64 {
	if panelCount == 0 {
		return 0
	}
	mean := totalScore / float64(panelCount)
	areaTerm := totalArea / 1000
	if areaTerm > 100 {
		areaTerm = 100
	}
	return 0.7*mean + 0.3*areaTerm
}

// pillarRatioByPanel maps each panel ID to the smallest measured/
// designed ratio among its adjacent pillar measurements.
func pillarRatioByPanel(measurements []PillarMeasurement, designed float64) map[string]float64 {
	out := make(map[string]float64)
	if designed <= 0 {
		return out
	}
	apply := func(id string, ratio float64) {
		if existing, ok := out[id]; !ok || ratio < existing {
			out[id] = ratio
		}
	}
	for _, m := range measurements {
		ratio := m.Measured / designed
		apply(m.PanelAID, ratio)
		apply(m.PanelBID, ratio)
	}
	return out
}

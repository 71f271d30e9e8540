package panelplan

import (
	"github.com/dshills/panelplan/pkg/interpolate"
	"github.com/dshills/panelplan/pkg/layout"
	"github.com/dshills/panelplan/pkg/validate"
)

// GeologySummary is the subset of a GeologyModel a DesignResult
// carries forward: the structural plane and the aggregate thickness/
// depth statistics the layout was derived from.
type GeologySummary struct {
	Strike, DipDirection, DipAngle float64
	AvgThickness, AvgDepth        float64
	MinDepth, MaxDepth            float64
}

// ScoreSummary is the grid-level statistics for the score dimension a
// plan was driven by.
type ScoreSummary struct {
	Mode  string
	Stats interpolate.Stats
}

// DesignResult is the complete C8 output of Pipeline.Plan: the
// resolved design parameters, the generated roadways/panels/pillars,
// the grid geometry they were laid out against, the C7 validation
// result, a summary of the driving score grid, and any accumulated
// warnings (too few boreholes, panels rejected by score threshold,
// cuts suppressed).
type DesignResult struct {
	GeologyParams GeologySummary
	DesignParams  layout.DesignParams
	Roadways      []layout.Roadway
	Panels        []layout.Panel
	Pillars       []layout.Pillar
	GridInfo      interpolate.GridInfo
	ScoreSummary  ScoreSummary
	Validation    *validate.Result
	Warnings      []string
}

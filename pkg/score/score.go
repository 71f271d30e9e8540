package score

import (
	"context"
	"math"

	"github.com/dshills/panelplan/pkg/contour"
	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
	"github.com/dshills/panelplan/pkg/pperrors"
)

// Weights controls the composite blend of the three base dimensions.
// A zero weight disables that dimension. If all three are zero, the
// composite treats them as equal.
type Weights struct {
	Safety, Economic, Env float64
}

// BoreholeScore is the rounded, bounded score set for one borehole.
type BoreholeScore struct {
	ID        string
	Safety    float64
	Economic  float64
	Env       float64
	Composite float64
}

// IsoLevels are the iso-levels contoured for every score grid.
var IsoLevels = []float64{30, 40, 50, 60, 70, 80, 90}

// Bundle is the complete C4 output: per-borehole scores, the four
// IDW grids sharing one geometry, their statistics, the iso-level
// contours, and the weights/resolution the bundle was built with.
type Bundle struct {
	PerBorehole []BoreholeScore

	SafetyGrid, EconomicGrid, EnvGrid, CompositeGrid *interpolate.Grid

	SafetyStats, EconomicStats, EnvStats, CompositeStats interpolate.Stats

	// Contours maps dimension name ("safety", "economic", "env",
	// "composite") to level to the segments extracted at that level.
	Contours map[string]map[float64][]contour.Segment

	Weights    Weights
	Resolution int
	Boundary   geometry.Polygon
}

// Build runs C4 end-to-end against an already-built geology model:
// per-borehole scoring, four IDW grids (reusing the geology model's
// grid geometry), statistics, and contours. The four grids are filled
// one after another, each row-parallel via
// interpolate.FillGridParallel, and each grid's levels are then
// extracted in parallel via contour.ExtractAllParallel, both bounded
// by ctx.
func Build(ctx context.Context, model *geology.Model, boundary geometry.Polygon, weights Weights, formula Formula) (*Bundle, error) {
	if len(model.Processed) == 0 {
		return nil, pperrors.New(pperrors.NoBoreholes, "geology model has no processed boreholes")
	}
	if formula == nil {
		formula = DefaultFormula{}
	}

	per := make([]BoreholeScore, 0, len(model.Processed))
	var safetySamples, economicSamples, envSamples, compositeSamples []interpolate.Sample

	w := weights
	total := w.Safety + w.Economic + w.Env
	if total == 0 {
		w = Weights{Safety: 1, Economic: 1, Env: 1}
		total = 3
	}

	for _, p := range model.Processed {
		safety := round1(formula.Safety(p))
		economic := round1(formula.Economic(p))
		env := round1(formula.Environment(p))
		composite := round1((safety*w.Safety + economic*w.Economic + env*w.Env) / total)

		per = append(per, BoreholeScore{
			ID:        p.Borehole.ID,
			Safety:    safety,
			Economic:  economic,
			Env:       env,
			Composite: composite,
		})

		pt := p.Borehole.Point
		safetySamples = append(safetySamples, interpolate.Sample{Point: pt, Value: formula.Safety(p)})
		economicSamples = append(economicSamples, interpolate.Sample{Point: pt, Value: formula.Economic(p)})
		envSamples = append(envSamples, interpolate.Sample{Point: pt, Value: formula.Environment(p)})
		compositeSamples = append(compositeSamples, interpolate.Sample{
			Point: pt,
			Value: (formula.Safety(p)*w.Safety + formula.Economic(p)*w.Economic + formula.Environment(p)*w.Env) / total,
		})
	}

	info := model.GridInfo
	safetyGrid, err := interpolate.FillGridParallel(ctx, info, boundary, safetySamples)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	economicGrid, err := interpolate.FillGridParallel(ctx, info, boundary, economicSamples)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	envGrid, err := interpolate.FillGridParallel(ctx, info, boundary, envSamples)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	compositeGrid, err := interpolate.FillGridParallel(ctx, info, boundary, compositeSamples)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}

	safetyContours, err := contour.ExtractAllParallel(ctx, safetyGrid, IsoLevels)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	economicContours, err := contour.ExtractAllParallel(ctx, economicGrid, IsoLevels)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	envContours, err := contour.ExtractAllParallel(ctx, envGrid, IsoLevels)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	compositeContours, err := contour.ExtractAllParallel(ctx, compositeGrid, IsoLevels)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}

	contours := map[string]map[float64][]contour.Segment{
		"safety":    safetyContours,
		"economic":  economicContours,
		"env":       envContours,
		"composite": compositeContours,
	}

	return &Bundle{
		PerBorehole:      per,
		SafetyGrid:       safetyGrid,
		EconomicGrid:     economicGrid,
		EnvGrid:          envGrid,
		CompositeGrid:    compositeGrid,
		SafetyStats:      interpolate.ComputeStats(safetyGrid),
		EconomicStats:    interpolate.ComputeStats(economicGrid),
		EnvStats:         interpolate.ComputeStats(envGrid),
		CompositeStats:   interpolate.ComputeStats(compositeGrid),
		Contours:         contours,
		Weights:          weights,
		Resolution:       model.GridInfo.Resolution,
		Boundary:         boundary,
	}, nil
}

// GridFor returns the grid for a named dimension ("safety",
// "economic", "env", "composite").
func (b *Bundle) GridFor(mode string) (*interpolate.Grid, bool) {
	switch mode {
	case "safety":
		return b.SafetyGrid, true
	case "economic":
		return b.EconomicGrid, true
	case "env":
		return b.EnvGrid, true
	case "composite":
		return b.CompositeGrid, true
	default:
		return nil, false
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package panelplan

import (
	"context"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
	"github.com/dshills/panelplan/pkg/layout"
	"github.com/dshills/panelplan/pkg/pperrors"
	"github.com/dshills/panelplan/pkg/score"
	"github.com/dshills/panelplan/pkg/validate"
)

// ctxErr translates a cancelled or expired context into the
// documented Cancelled/Timeout pipeline errors. Every façade method
// calls this at entry and again immediately before committing a
// result to the session, mirroring the teacher's
// "select { case <-ctx.Done(): return nil, ctx.Err() }" checks at
// each pipeline stage boundary (pkg/dungeon/dungeon.go). Below the
// façade, geology.Build and score.Build also check ctx at every grid
// row and contour level of their errgroup stages; layout.Build and
// validate.Validate take no ctx, so Plan checks it only before and
// after them.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return pperrors.FromContextErr(err)
	}
	return nil
}

// BuildGeology runs C3 for the given session, replacing any
// previously cached GeologyModel and invalidating the cached
// ScoreBundle (a new geology model makes any prior score grid stale).
func (p *Pipeline) BuildGeology(ctx context.Context, sessionToken string, boundary geometry.Polygon, boreholes []*geology.Borehole, resolution int, coalSeam geology.CoalSeamSelection) (*geology.Model, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	model, err := geology.Build(ctx, boundary, boreholes, resolution, coalSeam, nil)
	if err != nil {
		return nil, err
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s := p.sessionFor(sessionToken)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boundary = boundary
	s.model = model
	s.bundle = nil
	return model, nil
}

// Score runs C4 for the given session. Requires a GeologyModel
// already built for this session (DependencyMissing otherwise).
//
// resolution is accepted for interface fidelity with spec.md §6 but
// is not independently honoured: the four score grids are always
// filled over the geology model's own GridInfo, since every grid of
// one request must share identical geometry (spec.md §3's ScoreBundle
// invariant) and the geology model is the one place that geometry is
// fixed. A caller that wants a different grid resolution must call
// BuildGeology again with that resolution first.
func (p *Pipeline) Score(ctx context.Context, sessionToken string, weights score.Weights, resolution int) (*score.Bundle, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s := p.sessionFor(sessionToken)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model == nil {
		return nil, pperrors.New(pperrors.DependencyMissing, "score requires buildGeology to run first for this session")
	}

	bundle, err := score.Build(ctx, s.model, s.boundary, weights, nil)
	if err != nil {
		return nil, err
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s.bundle = bundle
	return bundle, nil
}

// Plan runs C6 then C7 for the given session: derives design
// parameters, strip-packs panels against the named score mode's grid,
// and validates the resulting plan. Requires both a GeologyModel and
// a ScoreBundle already built for this session (DependencyMissing
// otherwise); mode not in {safety, economic, env, composite} is
// InvalidMode.
func (p *Pipeline) Plan(ctx context.Context, sessionToken string, mode string, overrides layout.Overrides, lockedPanels []LockedPanelCfg) (*DesignResult, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	s := p.sessionFor(sessionToken)
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model == nil {
		return nil, pperrors.New(pperrors.DependencyMissing, "plan requires buildGeology to run first for this session")
	}
	if s.bundle == nil {
		return nil, pperrors.New(pperrors.DependencyMissing, "plan requires score to run first for this session")
	}

	grid, ok := s.bundle.GridFor(mode)
	if !ok {
		return nil, pperrors.New(pperrors.InvalidMode, "score mode %q is not one of safety, economic, env, composite", mode)
	}

	params := layout.DeriveParams(s.model, s.boundary, overrides)
	pivot := geometry.Centroid(s.boundary)
	locals := ToLockedPanels(lockedPanels, params.FrameAngle, pivot)
	plan, err := layout.Build(s.boundary, params, layout.ScoreField{Grid: grid}, locals)
	if err != nil {
		return nil, err
	}

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	validation := validate.Validate(plan, s.model, s.boundary)

	warnings := append([]string{}, s.model.Warnings...)
	warnings = append(warnings, plan.Warnings...)
	warnings = append(warnings, validation.Warnings...)

	modeStats, _ := statsFor(s.bundle, mode)

	return &DesignResult{
		GeologyParams: GeologySummary{
			Strike:       s.model.Strike,
			DipDirection: s.model.DipDirection,
			DipAngle:     s.model.DipAngle,
			AvgThickness: s.model.AvgThickness,
			AvgDepth:     s.model.AvgDepth,
			MinDepth:     s.model.MinDepth,
			MaxDepth:     s.model.MaxDepth,
		},
		DesignParams: plan.Params,
		Roadways:     plan.Roadways,
		Panels:       plan.Panels,
		Pillars:      plan.Pillars,
		GridInfo:     s.model.GridInfo,
		ScoreSummary: ScoreSummary{Mode: mode, Stats: modeStats},
		Validation:   validation,
		Warnings:     warnings,
	}, nil
}

func statsFor(bundle *score.Bundle, mode string) (interpolate.Stats, bool) {
	switch mode {
	case "safety":
		return bundle.SafetyStats, true
	case "economic":
		return bundle.EconomicStats, true
	case "env":
		return bundle.EnvStats, true
	case "composite":
		return bundle.CompositeStats, true
	default:
		return interpolate.Stats{}, false
	}
}

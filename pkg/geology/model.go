package geology

import (
	"context"
	"fmt"
	"math"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
	"github.com/dshills/panelplan/pkg/pperrors"
)

// Model is the complete geology model for one request: top/bottom/
// thickness grids, structural plane (strike/dip), and depth/thickness
// aggregate statistics.
type Model struct {
	TopGrid, BottomGrid, ThicknessGrid *interpolate.Grid

	Strike, DipDirection, DipAngle float64
	AvgThickness, AvgDepth         float64
	MinDepth, MaxDepth             float64

	GridInfo interpolate.GridInfo

	// Processed is retained so later stages (scoring) can reuse the
	// resolved per-borehole attributes without re-walking layers.
	Processed []*Processed

	// Warnings accumulates non-fatal diagnostics (e.g. too few
	// boreholes). Never free-text logged, always structured.
	Warnings []string
}

// Build runs C3 end-to-end: validates the boundary, processes every
// borehole, interpolates top/bottom elevation grids, derives the
// thickness grid, fits the structural plane, and computes aggregate
// statistics. The top and bottom grids are filled one after the other,
// each row-parallel via interpolate.FillGridParallel, bounded by ctx.
//
// A borehole whose seam can't be resolved is skipped with a recorded
// warning rather than failing the whole request; if every borehole is
// skipped this way, Build returns NoValidBorehole.
func Build(ctx context.Context, boundary geometry.Polygon, boreholes []*Borehole, resolution int, selection CoalSeamSelection, isCoal IsCoalFunc) (*Model, error) {
	if err := validateBoundary(boundary); err != nil {
		return nil, err
	}
	if len(boreholes) == 0 {
		return nil, pperrors.New(pperrors.NoBoreholes, "no boreholes supplied")
	}

	var warnings []string
	if len(boreholes) < 3 {
		warnings = append(warnings, "fewer than 3 boreholes supplied; geology model may be unreliable")
	}

	processed := make([]*Processed, 0, len(boreholes))
	for _, b := range boreholes {
		p, err := Process(b, selection, isCoal)
		if err != nil {
			// This borehole's seam couldn't be resolved (no coal layer,
			// or the explicit selection didn't match its layer names);
			// skip it rather than failing boreholes that did resolve.
			warnings = append(warnings, fmt.Sprintf("borehole %s skipped: %s", b.ID, err))
			continue
		}
		processed = append(processed, p)
	}
	if len(processed) == 0 {
		return nil, pperrors.New(pperrors.NoValidBorehole, "no borehole yielded a usable coal seam")
	}

	info := interpolate.NewGridInfo(boundary, resolution)

	var topSamples, bottomSamples []interpolate.Sample
	for _, p := range processed {
		if p.TopElevation != nil {
			topSamples = append(topSamples, interpolate.Sample{Point: p.Borehole.Point, Value: *p.TopElevation})
		}
		if p.BottomElevation != nil {
			bottomSamples = append(bottomSamples, interpolate.Sample{Point: p.Borehole.Point, Value: *p.BottomElevation})
		}
	}

	topGrid, err := interpolate.FillGridParallel(ctx, info, boundary, topSamples)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	bottomGrid, err := interpolate.FillGridParallel(ctx, info, boundary, bottomSamples)
	if err != nil {
		return nil, pperrors.FromContextErr(err)
	}
	thicknessGrid := thicknessFrom(topGrid, bottomGrid)

	fit := fitStructuralPlane(processed)

	avgThickness, avgDepth, minDepth, maxDepth := aggregateStats(processed)

	return &Model{
		TopGrid:       topGrid,
		BottomGrid:    bottomGrid,
		ThicknessGrid: thicknessGrid,
		Strike:        fit.StrikeDeg,
		DipDirection:  fit.DipDirectionDeg,
		DipAngle:      fit.DipAngleDeg,
		AvgThickness:  avgThickness,
		AvgDepth:      avgDepth,
		MinDepth:      minDepth,
		MaxDepth:      maxDepth,
		GridInfo:      info,
		Processed:     processed,
		Warnings:      warnings,
	}, nil
}

func validateBoundary(boundary geometry.Polygon) error {
	if len(boundary) < 3 {
		return pperrors.New(pperrors.InvalidBoundary, "boundary must have at least 3 vertices, got %d", len(boundary))
	}
	for _, p := range boundary {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return pperrors.New(pperrors.InvalidBoundary, "boundary vertex %v has a non-finite coordinate", p)
		}
	}
	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(boundary)
	if maxX-minX == 0 || maxY-minY == 0 {
		return pperrors.New(pperrors.DegenerateBoundary, "boundary bounding box has zero area")
	}
	return nil
}

// thicknessFrom derives thicknessGrid[i][j] = |top - bottom| wherever
// both grids define a value; the identity must hold exactly since
// both cells are rounded before this computation.
func thicknessFrom(top, bottom *interpolate.Grid) *interpolate.Grid {
	out := interpolate.NewGrid(top.Info)
	for row := 0; row <= top.Info.Resolution; row++ {
		for col := 0; col <= top.Info.Resolution; col++ {
			t, tOK := top.At(row, col)
			b, bOK := bottom.At(row, col)
			if !tOK || !bOK {
				continue
			}
			out.Set(row, col, math.Abs(t-b))
		}
	}
	return out
}

func fitStructuralPlane(processed []*Processed) PlaneFit {
	var pts []geometry.Point
	var z []float64
	for _, p := range processed {
		if p.TopElevation == nil {
			continue
		}
		pts = append(pts, p.Borehole.Point)
		z = append(z, *p.TopElevation)
	}
	return FitPlane(pts, z)
}

func aggregateStats(processed []*Processed) (avgThickness, avgDepth, minDepth, maxDepth float64) {
	var thicknessSum float64
	var thicknessCount int
	var depthSum float64
	var depthCount int
	minDepth, maxDepth = math.Inf(1), math.Inf(-1)

	for _, p := range processed {
		if p.CoalThickness > 0 {
			thicknessSum += p.CoalThickness
			thicknessCount++
		}
		d := depthOf(p)
		if d == nil {
			continue
		}
		depthSum += *d
		depthCount++
		if *d < minDepth {
			minDepth = *d
		}
		if *d > maxDepth {
			maxDepth = *d
		}
	}

	avgThickness = 3.0
	if thicknessCount > 0 {
		avgThickness = thicknessSum / float64(thicknessCount)
	}

	avgDepth = 400.0
	if depthCount > 0 {
		avgDepth = depthSum / float64(depthCount)
	} else {
		minDepth, maxDepth = avgDepth, avgDepth
	}
	if depthCount == 0 {
		minDepth, maxDepth = 400.0, 400.0
	}
	return
}

// depthOf returns a borehole's depth, preferring the explicit Depth
// field and falling back to the magnitude of its top elevation.
func depthOf(p *Processed) *float64 {
	if p.Depth != nil {
		return p.Depth
	}
	if p.TopElevation != nil {
		d := math.Abs(*p.TopElevation)
		return &d
	}
	return nil
}

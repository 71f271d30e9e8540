package layout

import (
	"math"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
)

// Default tunables, used whenever an Overrides field is left at its
// zero value.
const (
	DefaultBoundaryMargin = 30.0
	DefaultRoadwayWidth   = 4.0
	DefaultMinScore       = 50.0
	DefaultMaxPanelLength = 2000.0
	dipAlignThresholdDeg  = 5.0
)

// LayoutDirection picks how the packing frame is chosen.
type LayoutDirection int

const (
	// DirectionAuto follows the dip/strike rule when the structural dip
	// is steep enough, else aligns with the boundary's long axis.
	DirectionAuto LayoutDirection = iota
	// DirectionStrike forces the dip/strike rule regardless of dip angle.
	DirectionStrike
	// DirectionBoundary forces boundary-long-axis alignment regardless
	// of dip angle.
	DirectionBoundary
)

// Overrides lets a caller pin any derived design parameter instead of
// computing it from the geology model. A nil pointer leaves the
// formula-derived value in place.
type Overrides struct {
	PillarWidth    *float64
	PanelWidth     *float64
	PanelLength    *float64
	BoundaryMargin *float64
	RoadwayWidth   *float64
	MinScore       *float64
	Direction      LayoutDirection
}

// DesignParams is the resolved, ready-to-pack set of design
// parameters for one layout request.
type DesignParams struct {
	PillarWidth    float64
	PanelWidth     float64
	PanelLength    float64
	BoundaryMargin float64
	RoadwayWidth   float64
	MinScore       float64
	Orientation    Orientation
	// FrameAngle is the counter-clockwise angle, in radians, that
	// geometry.Rotate turns packing-frame coordinates by to reach world
	// coordinates (the world enters the packing frame by rotating by
	// -FrameAngle): -pi/2 for boundary-aligned horizontal, 0 for
	// boundary-aligned vertical, and model.DipDirection (in radians) for
	// a dip-aligned layout.
	FrameAngle float64
	DipAligned bool
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// derivePillarWidth implements Wp = clamp(0.1*D + 2*T + 0.2*alpha, 20, 35),
// with the D>700 deep-cover override raising the floor to 30.
func derivePillarWidth(depth, thickness, dipAngle float64) float64 {
	wp := clamp(0.1*depth+2*thickness+0.2*dipAngle, 20, 35)
	if depth > 700 && wp < 30 {
		wp = 30
	}
	return wp
}

// derivePanelWidth implements
// Wf = clamp(180 + 20*(T-3) - 0.05*(D-400) - 2*alpha, 100, 300).
func derivePanelWidth(depth, thickness, dipAngle float64) float64 {
	return clamp(180+20*(thickness-3)-0.05*(depth-400)-2*dipAngle, 100, 300)
}

// derivePanelLength caps the boundary's long dimension (minus twice
// the margin) at DefaultMaxPanelLength.
func derivePanelLength(longDimension, margin float64) float64 {
	lf := longDimension - 2*margin
	if lf > DefaultMaxPanelLength {
		lf = DefaultMaxPanelLength
	}
	if lf < 0 {
		lf = 0
	}
	return lf
}

// chooseFrame decides the packing-frame rotation angle and the
// reporting Orientation tag.
//
// When the dip is steep enough (or the caller forces DirectionStrike),
// the frame is rotated so the panel length axis runs along strike and
// the packing axis runs along dip direction: this is the configuration
// verified against the worked "steep dip routing" scenario, where a
// dipDirection of 90 degrees and dipAngle of 15 degrees yields a panel
// length axis within 1 degree of the strike line (0 or 180 degrees).
//
// Otherwise the frame is axis-aligned with whichever of the boundary's
// bounding-box dimensions is longer.
func chooseFrame(direction LayoutDirection, dipAngleDeg, dipDirectionDeg float64, boundary geometry.Polygon) (angleRad float64, orientation Orientation, dipAligned bool) {
	useStrike := direction == DirectionStrike || (direction == DirectionAuto && dipAngleDeg >= dipAlignThresholdDeg)
	if useStrike {
		theta := dipDirectionDeg * math.Pi / 180
		lengthAxisDeg := math.Mod(dipDirectionDeg+90, 360)
		return theta, orientationFromAxisAngle(lengthAxisDeg), true
	}

	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(boundary)
	width, height := maxX-minX, maxY-minY
	if width >= height {
		// Length axis along world X: local Y (always the length axis in
		// this package's packing frame) must map to world X, i.e.
		// theta+90 = 0, theta = -90 degrees.
		return -math.Pi / 2, OrientationHorizontal, false
	}
	return 0, OrientationVertical, false
}

// orientationFromAxisAngle reports whether a world-frame direction
// (degrees, any convention) sits closer to the north-south axis
// (vertical) or the east-west axis (horizontal).
func orientationFromAxisAngle(deg float64) Orientation {
	m := math.Mod(deg, 180)
	if m < 0 {
		m += 180
	}
	// m in [0,180): near 90 is north-south (vertical), near 0/180 is
	// east-west (horizontal).
	if math.Abs(m-90) < 45 {
		return OrientationVertical
	}
	return OrientationHorizontal
}

// DeriveParams computes the design parameters C6 packs with, per
// SPEC_FULL.md: formula-derived defaults, overridden field-by-field by
// any non-nil Overrides entry. PillarWidth and PanelWidth overrides are
// clamped to the same [20,35] and [100,300] bands the formula-derived
// defaults are, per spec.md's override rule.
func DeriveParams(model *geology.Model, boundary geometry.Polygon, overrides Overrides) DesignParams {
	margin := DefaultBoundaryMargin
	if overrides.BoundaryMargin != nil {
		margin = *overrides.BoundaryMargin
	}

	angleRad, orientation, dipAligned := chooseFrame(overrides.Direction, model.DipAngle, model.DipDirection, boundary)

	rotated := geometry.RotatePolygon(boundary, -angleRad, geometry.Centroid(boundary))
	_, _, minY, maxY := geometry.AxisAlignedExtents(rotated)
	longDimension := maxY - minY

	wp := derivePillarWidth(model.AvgDepth, model.AvgThickness, model.DipAngle)
	if overrides.PillarWidth != nil {
		wp = clamp(*overrides.PillarWidth, 20, 35)
	}

	wf := derivePanelWidth(model.AvgDepth, model.AvgThickness, model.DipAngle)
	if overrides.PanelWidth != nil {
		wf = clamp(*overrides.PanelWidth, 100, 300)
	}

	lf := derivePanelLength(longDimension, margin)
	if overrides.PanelLength != nil {
		lf = *overrides.PanelLength
	}

	roadwayWidth := DefaultRoadwayWidth
	if overrides.RoadwayWidth != nil {
		roadwayWidth = *overrides.RoadwayWidth
	}

	minScore := DefaultMinScore
	if overrides.MinScore != nil {
		minScore = *overrides.MinScore
	}

	return DesignParams{
		PillarWidth:    wp,
		PanelWidth:     wf,
		PanelLength:    lf,
		BoundaryMargin: margin,
		RoadwayWidth:   roadwayWidth,
		MinScore:       minScore,
		Orientation:    orientation,
		FrameAngle:     angleRad,
		DipAligned:     dipAligned,
	}
}

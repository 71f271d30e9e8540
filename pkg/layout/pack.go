package layout

import (
	"fmt"
	"math"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/pperrors"
)

const (
	packEpsilon    = 1e-6
	cutSampleCount = 10
	// panelRejectFraction and cutSuppressFraction are the two
	// minScore multipliers a candidate's mean grid score is checked
	// against: panels reject hard below 0.6*minScore, cut-throughs
	// suppress below 0.8*minScore.
	panelRejectFraction = 0.6
	cutSuppressFraction = 0.8
)

// Build strip-packs panels across boundary under params, then adds
// the two main roadways and each panel's cut-through connectors.
// score is the grid of the selected score mode that the packer
// consults for rejection and
// suppression thresholds; it may be nil, in which case every
// candidate panel and connector is kept.
func Build(boundary geometry.Polygon, params DesignParams, score ScoreField, locked []LockedPanel) (*Plan, error) {
	if len(boundary) < 3 {
		return nil, pperrors.New(pperrors.InvalidBoundary, "boundary must have at least 3 vertices, got %d", len(boundary))
	}
	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(boundary)
	if maxX-minX == 0 || maxY-minY == 0 {
		return nil, pperrors.New(pperrors.DegenerateBoundary, "boundary bounding box has zero area")
	}

	plan := &Plan{Params: params}

	pivot := geometry.Centroid(boundary)
	local := geometry.RotatePolygon(boundary, -params.FrameAngle, pivot)
	lMinX, lMaxX, lMinY, lMaxY := geometry.AxisAlignedExtents(local)

	packMinX := lMinX + params.BoundaryMargin
	packMaxX := lMaxX - params.BoundaryMargin
	packMinY := lMinY + params.BoundaryMargin
	packMaxY := lMaxY - params.BoundaryMargin

	if packMaxX-packMinX <= 0 || packMaxY-packMinY <= 0 {
		plan.Warnings = append(plan.Warnings, "boundary margin leaves no packable area")
		return plan, nil
	}

	y0 := packMinY
	y1 := y0 + params.PanelLength
	if y1 > packMaxY {
		y1 = packMaxY
	}
	if y1-y0 <= 0 {
		plan.Warnings = append(plan.Warnings, "panel length leaves no packable height")
		return plan, nil
	}

	lockedRects := make([]geometry.Rectangle, len(locked))
	for i, l := range locked {
		lockedRects[i] = l.rectangle()
	}

	// Locked panels are echoed verbatim into the plan, marked Locked,
	// before any generated panel is considered: they are obstacles to
	// the packer, not candidates it can reject or resize.
	for i, r := range lockedRects {
		corners := rectCorners(r, params.FrameAngle, pivot)
		avgScore, _ := score.AverageOver(geometry.Polygon(corners[:]))
		plan.Panels = append(plan.Panels, Panel{
			ID:          fmt.Sprintf("LOCK%02d", i+1),
			Center:      geometry.Rotate(r.Center(), params.FrameAngle, pivot),
			Corners:     corners,
			Width:       r.Width,
			Length:      r.Height,
			Area:        r.Width * r.Height,
			Orientation: params.Orientation,
			AvgScore:    avgScore,
			Locked:      true,
		})
	}

	cursor := packMinX
	stripIndex := 0
	var lastAccepted *Panel

	for cursor+params.PanelWidth <= packMaxX+packEpsilon {
		candidate := geometry.Rectangle{MinX: cursor, MinY: y0, Width: params.PanelWidth, Height: y1 - y0}

		if r, blocked := firstOverlap(candidate, lockedRects); blocked {
			cursor = r.MaxX() + params.PillarWidth
			lastAccepted = nil
			continue
		}

		worldCorners := rectCorners(candidate, params.FrameAngle, pivot)
		worldPoly := geometry.Polygon(worldCorners[:])
		avgScore, hasScore := score.AverageOver(worldPoly)

		accept := !hasScore || avgScore >= params.MinScore*panelRejectFraction
		if accept {
			stripIndex++
			center := geometry.Rotate(candidate.Center(), params.FrameAngle, pivot)
			panel := Panel{
				ID:          fmt.Sprintf("P%02d", stripIndex),
				Center:      center,
				Corners:     worldCorners,
				Width:       params.PanelWidth,
				Length:      y1 - y0,
				Area:        params.PanelWidth * (y1 - y0),
				Orientation: params.Orientation,
				AvgScore:    avgScore,
				StripIndex:  stripIndex - 1,
			}
			plan.Panels = append(plan.Panels, panel)

			if lastAccepted != nil {
				plan.Pillars = append(plan.Pillars, pillarBetween(*lastAccepted, panel, params.FrameAngle, pivot, len(plan.Pillars)+1))
			}
			lastAccepted = &plan.Panels[len(plan.Panels)-1]
		} else {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("panel at local x=%.1f rejected: avg score %.1f below minimum %.1f", cursor, avgScore, params.MinScore))
		}

		cursor += params.PanelWidth + params.PillarWidth
	}

	if len(plan.Panels) == 0 {
		plan.Warnings = append(plan.Warnings, "no panels placed within boundary")
		return plan, nil
	}

	sideA, sideB := roadwaySides(params.Orientation)
	roadwayA := mainRoadway(boundary, sideA, params.RoadwayWidth, 1)
	roadwayB := mainRoadway(boundary, sideB, params.RoadwayWidth, 2)
	plan.Roadways = append(plan.Roadways, roadwayA, roadwayB)

	for i := range plan.Panels {
		connectors := cutThroughsFor(&plan.Panels[i], roadwayA, roadwayB, params, score)
		plan.Roadways = append(plan.Roadways, connectors...)
	}

	return plan, nil
}

// firstOverlap returns the first locked rectangle candidate overlaps,
// if any.
func firstOverlap(candidate geometry.Rectangle, locked []geometry.Rectangle) (geometry.Rectangle, bool) {
	for _, r := range locked {
		if geometry.RectanglesOverlap(candidate, r) {
			return r, true
		}
	}
	return geometry.Rectangle{}, false
}

// rectCorners rotates a local, axis-aligned rectangle's four corners
// back into world coordinates, in bottom-left, bottom-right,
// top-right, top-left order.
func rectCorners(r geometry.Rectangle, angleRad float64, pivot geometry.Point) [4]geometry.Point {
	local := [4]geometry.Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX(), Y: r.MinY},
		{X: r.MaxX(), Y: r.MaxY()},
		{X: r.MinX, Y: r.MaxY()},
	}
	var out [4]geometry.Point
	for i, p := range local {
		out[i] = geometry.Rotate(p, angleRad, pivot)
	}
	return out
}

func pillarBetween(a, b Panel, angleRad float64, pivot geometry.Point, id int) Pillar {
	// Both panels share the same local y-range; the pillar spans from
	// a's cross-axis edge to b's, inverse-rotated into local frame to
	// recover the cross-axis coordinates cleanly.
	la := geometry.RotatePolygon(geometry.Polygon(a.Corners[:]), -angleRad, pivot)
	lb := geometry.RotatePolygon(geometry.Polygon(b.Corners[:]), -angleRad, pivot)
	aMinX, aMaxX, minY, maxY := geometry.AxisAlignedExtents(la)
	bMinX, bMaxX, _, _ := geometry.AxisAlignedExtents(lb)

	left, right := aMaxX, bMinX
	if aMinX > bMinX {
		left, right = bMaxX, aMinX
	}
	rect := geometry.Rectangle{MinX: left, MinY: minY, Width: right - left, Height: maxY - minY}
	return Pillar{
		ID:      fmt.Sprintf("PL%02d", id),
		Corners: rectCorners(rect, angleRad, pivot),
		Width:   right - left,
	}
}

// roadwaySides maps an Orientation to the two boundary sides the main
// roadways follow: north/south for a horizontal length axis,
// east/west for a vertical one.
func roadwaySides(o Orientation) (geometry.Side, geometry.Side) {
	if o == OrientationHorizontal {
		return geometry.SideNorth, geometry.SideSouth
	}
	return geometry.SideEast, geometry.SideWest
}

func mainRoadway(boundary geometry.Polygon, side geometry.Side, width float64, id int) Roadway {
	path := geometry.BoundaryLine(boundary, side)
	return Roadway{
		ID:     fmt.Sprintf("RW%02d", id),
		Kind:   RoadwayMain,
		Path:   path,
		Width:  width,
		Length: pathLength(path),
	}
}

// cutThroughsFor produces the two connectors (transport from the
// panel's near short edge, return from its far short edge) linking
// panel to whichever of the two main roadways is closer, suppressing
// any connector whose sampled mean score falls below 0.8 of the
// design minimum.
func cutThroughsFor(panel *Panel, roadwayA, roadwayB Roadway, params DesignParams, score ScoreField) []Roadway {
	suppressThreshold := params.MinScore * cutSuppressFraction

	nearMid := midpoint(panel.Corners[0], panel.Corners[1]) // bottom short edge
	farMid := midpoint(panel.Corners[2], panel.Corners[3])  // top short edge

	var out []Roadway
	for i, mid := range []geometry.Point{nearMid, farMid} {
		target, ok := closerRoadway(mid, roadwayA, roadwayB)
		if !ok {
			continue
		}
		meanScore, hasScore := score.SampleSegment(mid, target, cutSampleCount)
		if hasScore && meanScore < suppressThreshold {
			continue
		}
		kind := RoadwayTransport
		if i == 1 {
			kind = RoadwayReturn
		}
		path := []geometry.Point{mid, target}
		out = append(out, Roadway{
			ID:     fmt.Sprintf("%s-%s", panel.ID, kind),
			Kind:   kind,
			Path:   path,
			Width:  params.RoadwayWidth,
			Length: pathLength(path),
		})
	}
	return out
}

func midpoint(a, b geometry.Point) geometry.Point {
	return geometry.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func closerRoadway(p geometry.Point, a, b Roadway) (geometry.Point, bool) {
	if len(a.Path) < 2 && len(b.Path) < 2 {
		return geometry.Point{}, false
	}
	if len(a.Path) < 2 {
		pt, _ := geometry.ClosestPointOnPolyline(p, b.Path)
		return pt, true
	}
	if len(b.Path) < 2 {
		pt, _ := geometry.ClosestPointOnPolyline(p, a.Path)
		return pt, true
	}
	ptA, distA := geometry.ClosestPointOnPolyline(p, a.Path)
	ptB, distB := geometry.ClosestPointOnPolyline(p, b.Path)
	if math.Min(distA, distB) == distA {
		return ptA, true
	}
	return ptB, true
}

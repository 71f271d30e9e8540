package validate

import (
	"math"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/interpolate"
	"github.com/dshills/panelplan/pkg/layout"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// nearestProcessed returns the geology.Processed borehole whose point
// is closest to p. Used as the panel-level source of attributes that
// are only measured at boreholes (gas content, ground water, coal
// thickness), mirroring how C4 attaches a single borehole's scalars to
// an area around it.
func nearestProcessed(model *geology.Model, p geometry.Point) *geology.Processed {
	var best *geology.Processed
	bestDist := math.Inf(1)
	for _, pr := range model.Processed {
		d := math.Hypot(p.X-pr.Borehole.Point.X, p.Y-pr.Borehole.Point.Y)
		if d < bestDist {
			bestDist = d
			best = pr
		}
	}
	return best
}

// thicknessUniformity samples thicknessGrid over polygon and returns
// 1 for a perfectly uniform seam, decaying toward 0 as the
// coefficient of variation grows; a grid with fewer than two samples
// is treated as perfectly uniform (nothing to disagree with).
func thicknessUniformity(grid *interpolate.Grid, polygon geometry.Polygon) float64 {
	if grid == nil {
		return 1
	}
	info := grid.Info
	minX, maxX, minY, maxY := geometry.AxisAlignedExtents(polygon)
	colLo := clampRange(int(math.Floor((minX-info.MinX)/stepOrOne(info.StepX))), 0, info.Resolution)
	colHi := clampRange(int(math.Ceil((maxX-info.MinX)/stepOrOne(info.StepX))), 0, info.Resolution)
	rowLo := clampRange(int(math.Floor((minY-info.MinY)/stepOrOne(info.StepY))), 0, info.Resolution)
	rowHi := clampRange(int(math.Ceil((maxY-info.MinY)/stepOrOne(info.StepY))), 0, info.Resolution)

	var values []float64
	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			wp := info.World(row, col)
			if !geometry.PointInPolygon(wp, polygon) {
				continue
			}
			if v, ok := grid.At(row, col); ok {
				values = append(values, v)
			}
		}
	}
	if len(values) < 2 {
		return 1
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 1
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	stddev := math.Sqrt(sqDiff / float64(len(values)))
	cv := stddev / mean
	return clamp01(1 - cv)
}

func clampRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func stepOrOne(step float64) float64 {
	if step == 0 {
		return 1
	}
	return step
}

// nearestRoadwayDistance returns the distance from p to the closest
// point on any roadway of the given kinds.
func nearestRoadwayDistance(p geometry.Point, roadways []layout.Roadway, kinds ...layout.RoadwayKind) float64 {
	best := math.Inf(1)
	for _, rw := range roadways {
		match := false
		for _, k := range kinds {
			if rw.Kind == k {
				match = true
				break
			}
		}
		if !match || len(rw.Path) < 2 {
			continue
		}
		_, d := geometry.ClosestPointOnPolyline(p, rw.Path)
		if d < best {
			best = d
		}
	}
	return best
}

// scorePanel computes the eight bounded sub-factors for one panel.
func scorePanel(panel layout.Panel, model *geology.Model, params layout.DesignParams, roadways []layout.Roadway) PanelFactors {
	uniformity := thicknessUniformity(model.ThicknessGrid, geometry.Polygon(panel.Corners[:]))

	nearest := nearestProcessed(model, panel.Center)
	coalThickness := geology.DefaultCoalThickness
	gasContent := geology.DefaultGasContent
	groundWater := geology.DefaultGroundWater
	if nearest != nil {
		coalThickness = nearest.Attrs.CoalThickness
		gasContent = nearest.Attrs.GasContent
		groundWater = nearest.Attrs.GroundWater
	}

	economic100 := math.Min(100, 20+15*coalThickness)
	environmental100 := 100 - 0.8*groundWater

	idealArea := params.PanelWidth * params.PanelLength
	efficiencyRatio := 1.0
	if idealArea > 0 {
		efficiencyRatio = clamp01(panel.Area / idealArea)
	}

	technicalFitRatio := clamp01(1 - model.DipAngle/30)

	ventDist := nearestRoadwayDistance(panel.Center, roadways, layout.RoadwayTransport, layout.RoadwayReturn)
	ventRatio := 1.0
	if !math.IsInf(ventDist, 1) {
		ventRatio = clamp01(1 - ventDist/(params.PanelLength+1))
	}

	transportDist := nearestRoadwayDistance(panel.Center, roadways, layout.RoadwayMain)
	transportRatio := 1.0
	if !math.IsInf(transportDist, 1) {
		transportRatio = clamp01(1 - transportDist/(params.PanelLength+params.BoundaryMargin+1))
	}

	safetyRatio := clamp01(panel.AvgScore / 100)
	if panel.AvgScore == 0 && nearest == nil {
		safetyRatio = 1
	}

	return PanelFactors{
		GeologicalUniformity: MaxGeologicalUniformity * uniformity,
		Safety:               MaxSafety * safetyRatio,
		Economic:             MaxEconomic * (economic100 / 100),
		TechnicalFit:         MaxTechnicalFit * technicalFitRatio,
		Efficiency:           MaxEfficiency * efficiencyRatio,
		Ventilation:          MaxVentilation * ventRatio,
		Transport:            MaxTransport * transportRatio,
		Environmental:        MaxEnvironmental * clamp01(environmental100/100),
	}
}

// vetoReasons applies the three veto rules, given the factors already
// computed and the panel's nearest-borehole gas content/depth.
func vetoReasons(factors PanelFactors, gasContent, depth float64, pillarRatio float64) []string {
	var reasons []string
	if factors.Safety < 10 {
		reasons = append(reasons, "safety subtotal below 10")
	}
	if pillarRatio < 0.9 {
		reasons = append(reasons, "pillar ratio below 0.9")
	}
	if gasContent > 15 && depth > 500 {
		reasons = append(reasons, "gas content above 15 with depth above 500")
	}
	return reasons
}

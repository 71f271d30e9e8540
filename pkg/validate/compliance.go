package validate

import (
	"fmt"
	"math"
	"sort"

	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/layout"
)

// MeasurePillars independently re-derives the clear spacing between
// every consecutive pair of generated (non-locked) panels along the
// packing axis and compares it to the designed pillar width. It never
// trusts layout.Pillar.Width directly: that value is the packer's own
// accounting, and this is the validator's cross-check of it.
func MeasurePillars(panels []layout.Panel, designedWp, frameAngleRad float64, pivot geometry.Point) []PillarMeasurement {
	type localPanel struct {
		panel      layout.Panel
		minX, maxX float64
	}

	var ordered []localPanel
	for _, p := range panels {
		if p.Locked {
			continue
		}
		local := geometry.RotatePolygon(geometry.Polygon(p.Corners[:]), -frameAngleRad, pivot)
		minX, maxX, _, _ := geometry.AxisAlignedExtents(local)
		ordered = append(ordered, localPanel{panel: p, minX: minX, maxX: maxX})
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].minX < ordered[j].minX })

	var out []PillarMeasurement
	for i := 0; i+1 < len(ordered); i++ {
		a, b := ordered[i], ordered[i+1]
		measured := b.minX - a.maxX
		deviation := measured - designedWp
		out = append(out, PillarMeasurement{
			PanelAID:       a.panel.ID,
			PanelBID:       b.panel.ID,
			Measured:       measured,
			Designed:       designedWp,
			Deviation:      deviation,
			OutOfTolerance: math.Abs(deviation) > PillarSpacingTolerance,
		})
	}
	return out
}

// pillarWarnings turns any out-of-tolerance measurement into a
// structured warning string.
func pillarWarnings(measurements []PillarMeasurement) []string {
	var warnings []string
	for _, m := range measurements {
		if m.OutOfTolerance {
			warnings = append(warnings, fmt.Sprintf(
				"pillar spacing between %s and %s is %.1f, designed %.1f (deviation %.1f exceeds tolerance %.1f)",
				m.PanelAID, m.PanelBID, m.Measured, m.Designed, m.Deviation, PillarSpacingTolerance))
		}
	}
	return warnings
}

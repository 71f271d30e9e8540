package geology

import (
	"strings"

	"github.com/dshills/panelplan/pkg/geometry"
)

// Documented attribute defaults (spec.md §3 / §6) used whenever a
// borehole omits the corresponding field.
const (
	DefaultRockHardness   = 5.0
	DefaultGasContent     = 0.0
	DefaultCoalThickness  = 3.0
	DefaultGroundWater    = 0.0
	DefaultCalorificValue = 25.0
)

// CoalMarker is the default coal-layer name predicate substring. The
// source domain spells it "煤"; callers that ingest a different
// taxonomy may supply their own IsCoalFunc predicate to Process.
const CoalMarker = "煤"

// DefaultIsCoal reports whether name should be treated as a coal
// layer, using the literal CoalMarker substring.
func DefaultIsCoal(name string) bool {
	return strings.Contains(name, CoalMarker)
}

// Layer is one stratigraphic unit of a borehole, ordered top to
// bottom.
type Layer struct {
	Name      string
	Thickness float64 // non-negative
}

// lithologyHardness maps a lithology name (matched by substring, in
// table order) to a Protodyakonov-style hardness index. Lookup falls
// back to DefaultRockHardness when nothing matches.
var lithologyHardness = []struct {
	Contains string
	Hardness float64
}{
	{"页岩", 3.0},  // shale
	{"泥岩", 2.5},  // mudstone
	{"砂岩", 6.0},  // sandstone
	{"砾岩", 8.0},  // conglomerate
	{"灰岩", 9.0},  // limestone
	{"煤", 2.0},   // coal itself, if ever scored as non-coal in a mixed seam
}

func hardnessFor(name string) float64 {
	for _, e := range lithologyHardness {
		if strings.Contains(name, e.Contains) {
			return e.Hardness
		}
	}
	return DefaultRockHardness
}

// Attributes carries the geological scalars a borehole contributes to
// scoring and geometry. Any field left at its zero value and not
// explicitly supplied falls back to its Default* constant during
// Process.
type Attributes struct {
	RockHardness  float64
	GasContent    float64
	CoalThickness float64
	GroundWater   float64
	CalorificVal  float64

	TopElevation    *float64
	BottomElevation *float64
	Depth           *float64
}

// Borehole is one measurement location: identity, position, and
// either a layer sequence or pre-computed attributes.
type Borehole struct {
	ID               string
	Point            geometry.Point
	SurfaceElevation *float64
	TotalDepth       *float64
	Layers           []Layer     // ordered top to bottom; nil if Attributes supplied directly
	Attributes       *Attributes // pre-computed; nil if Layers supplied
}

// layerSpan is a layer after the top-to-bottom depth walk.
type layerSpan struct {
	TopDepth, BottomDepth       float64
	TopElevation, BottomElevation float64
	IsCoal                      bool
	Layer                       Layer
}

// CoalSeamSelection chooses which coal layer of a borehole is "the"
// coal seam. The zero value (Explicit == "") means automatic
// selection: the thickest coal layer.
type CoalSeamSelection struct {
	Explicit string // substring of a coal layer name; "" means automatic
}

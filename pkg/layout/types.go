package layout

import (
	"fmt"
	"math"

	"github.com/dshills/panelplan/pkg/geometry"
)

// Orientation tags the axis the panel length runs along, for
// reporting purposes. The actual packing frame may be rotated
// (dip-aligned layouts), but Orientation always reflects which global
// axis the length axis ends up closest to.
type Orientation int

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

// String returns the string representation of an Orientation.
func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// RoadwayKind is a closed set of roadway categories.
type RoadwayKind int

const (
	RoadwayMain RoadwayKind = iota
	RoadwayTransport
	RoadwayReturn
	RoadwayCut
	RoadwayBranch
)

// String returns the string representation of a RoadwayKind.
func (k RoadwayKind) String() string {
	switch k {
	case RoadwayMain:
		return "main"
	case RoadwayTransport:
		return "transport"
	case RoadwayReturn:
		return "return"
	case RoadwayCut:
		return "cut"
	case RoadwayBranch:
		return "branch"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Panel is a single long-wall workface rectangle, with its corners
// already expressed in world coordinates (any packing-frame rotation
// has been undone).
type Panel struct {
	ID          string
	Center      geometry.Point
	Corners     [4]geometry.Point // world frame, in order: bottom-left, bottom-right, top-right, top-left (local frame before rotation)
	Width       float64           // Wf, the face dimension between gateroads
	Length      float64           // Lf, the advance dimension
	Area        float64
	Orientation Orientation
	AvgScore    float64
	StripIndex  int
	Locked      bool // true for caller-supplied locked panels, echoed verbatim
}

// Pillar is the coal left between two neighbouring panels along the
// packing axis.
type Pillar struct {
	ID      string
	Corners [4]geometry.Point
	Width   float64 // designed pillar width, Wp
}

// Roadway is an ordered polyline path of a given kind and width.
type Roadway struct {
	ID     string
	Kind   RoadwayKind
	Path   []geometry.Point
	Width  float64
	Length float64
}

// LockedPanel is a caller-supplied rectangle, already expressed in
// the packing frame's local coordinates (after the DesignParams
// rotation, before it is undone), that must never be overlapped by a
// generated panel. Packing treats it as an obstacle and also echoes it
// verbatim into Plan.Panels (world coordinates, Locked: true); it is
// never resized or rejected the way a generated panel can be.
type LockedPanel struct {
	X, Y, W, H float64
}

func (l LockedPanel) rectangle() geometry.Rectangle {
	return geometry.Rectangle{MinX: l.X, MinY: l.Y, Width: l.W, Height: l.H}
}

// Plan is the complete C6 output.
type Plan struct {
	Params   DesignParams
	Panels   []Panel
	Pillars  []Pillar
	Roadways []Roadway
	Warnings []string
}

func pathLength(path []geometry.Point) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		total += math.Hypot(path[i].X-path[i+1].X, path[i].Y-path[i+1].Y)
	}
	return total
}

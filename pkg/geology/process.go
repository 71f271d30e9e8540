package geology

import (
	"strings"

	"github.com/dshills/panelplan/pkg/pperrors"
)

// Processed is the resolved, derived view of one borehole: the
// attributes used by scoring and gridding, plus the chosen coal
// span's elevations.
type Processed struct {
	Borehole        *Borehole
	Attrs           Attributes
	CoalThickness   float64
	TopElevation    *float64
	BottomElevation *float64
	Depth           *float64
}

// IsCoalFunc decides whether a layer name denotes coal. Supplied by
// the caller at ingest time; DefaultIsCoal is used if nil.
type IsCoalFunc func(name string) bool

// Process resolves a single borehole's derived fields. When b.Layers
// is non-nil, it walks the layer sequence top-to-bottom, selects a
// coal seam per selection, and derives CoalThickness/Top/Bottom
// elevation/Depth/RockHardness from it. When b.Layers is nil, it uses
// b.Attributes directly, filling any zero field from the documented
// defaults.
//
// Returns a *pperrors.Error of kind NoCoalFound if automatic selection
// finds no coal layer, or CoalSeamNotFound (with Details = available
// coal names) if an explicit selection substring matches nothing.
func Process(b *Borehole, selection CoalSeamSelection, isCoal IsCoalFunc) (*Processed, error) {
	if isCoal == nil {
		isCoal = DefaultIsCoal
	}

	if b.Layers == nil {
		return processFromAttributes(b), nil
	}
	return processFromLayers(b, selection, isCoal)
}

func processFromAttributes(b *Borehole) *Processed {
	a := Attributes{}
	if b.Attributes != nil {
		a = *b.Attributes
	}
	applyDefaults(&a)

	p := &Processed{
		Borehole:        b,
		Attrs:           a,
		CoalThickness:   a.CoalThickness,
		TopElevation:    a.TopElevation,
		BottomElevation: a.BottomElevation,
		Depth:           a.Depth,
	}
	return p
}

func applyDefaults(a *Attributes) {
	if a.RockHardness == 0 {
		a.RockHardness = DefaultRockHardness
	}
	if a.CoalThickness == 0 {
		a.CoalThickness = DefaultCoalThickness
	}
	if a.CalorificVal == 0 {
		a.CalorificVal = DefaultCalorificValue
	}
	// GasContent and GroundWater default to 0, which is already their
	// zero value, so no assignment is needed for them.
}

func processFromLayers(b *Borehole, selection CoalSeamSelection, isCoal IsCoalFunc) (*Processed, error) {
	spans := walkLayers(b.Layers, isCoal)

	coalSpans := make([]layerSpan, 0)
	coalNames := make([]string, 0)
	for _, s := range spans {
		if s.IsCoal {
			coalSpans = append(coalSpans, s)
			coalNames = append(coalNames, s.Layer.Name)
		}
	}

	chosen, err := selectCoalSpan(coalSpans, selection, coalNames)
	if err != nil {
		return nil, err
	}

	rockHardness := rockHardnessOver(spans)
	topElev := chosen.TopElevation
	bottomElev := chosen.BottomElevation
	depth := chosen.TopDepth

	a := Attributes{
		RockHardness:    rockHardness,
		GasContent:      DefaultGasContent,
		CoalThickness:   chosen.Layer.Thickness,
		GroundWater:     DefaultGroundWater,
		CalorificVal:    DefaultCalorificValue,
		TopElevation:    &topElev,
		BottomElevation: &bottomElev,
		Depth:           &depth,
	}

	return &Processed{
		Borehole:        b,
		Attrs:           a,
		CoalThickness:   chosen.Layer.Thickness,
		TopElevation:    &topElev,
		BottomElevation: &bottomElev,
		Depth:           &depth,
	}, nil
}

// walkLayers accumulates currentDepth top-to-bottom, recording a span
// for every non-empty, positive-thickness layer.
func walkLayers(layers []Layer, isCoal IsCoalFunc) []layerSpan {
	var spans []layerSpan
	currentDepth := 0.0
	for _, l := range layers {
		if l.Name == "" || l.Thickness <= 0 {
			continue
		}
		topDepth := currentDepth
		bottomDepth := currentDepth + l.Thickness
		spans = append(spans, layerSpan{
			TopDepth:        topDepth,
			BottomDepth:     bottomDepth,
			TopElevation:    -topDepth,
			BottomElevation: -bottomDepth,
			IsCoal:          isCoal(l.Name),
			Layer:           l,
		})
		currentDepth = bottomDepth
	}
	return spans
}

// selectCoalSpan implements CoalSeamSelection: explicit substring
// match (first coal layer whose name contains it), or automatic
// (thickest coal layer).
func selectCoalSpan(coalSpans []layerSpan, selection CoalSeamSelection, available []string) (layerSpan, error) {
	if selection.Explicit != "" {
		for _, s := range coalSpans {
			if strings.Contains(s.Layer.Name, selection.Explicit) {
				return s, nil
			}
		}
		return layerSpan{}, pperrors.New(pperrors.CoalSeamNotFound,
			"no coal layer name contains %q", selection.Explicit).WithDetails(available)
	}

	if len(coalSpans) == 0 {
		return layerSpan{}, pperrors.New(pperrors.NoCoalFound, "borehole has no coal layer")
	}

	best := coalSpans[0]
	for _, s := range coalSpans[1:] {
		if s.Layer.Thickness > best.Layer.Thickness {
			best = s
		}
	}
	return best, nil
}

// neutralRockHardness is used when a borehole's layer sequence has no
// non-coal span to average over: the safety formula's optimum (7) is
// the neutral choice, rather than the generic attribute default of 5,
// so a pure-coal borehole is not penalized for missing overburden data.
const neutralRockHardness = 7.0

// rockHardnessOver computes the thickness-weighted average hardness
// over all non-coal spans, falling back to neutralRockHardness when
// there are none.
func rockHardnessOver(spans []layerSpan) float64 {
	var weighted, totalThickness float64
	for _, s := range spans {
		if s.IsCoal {
			continue
		}
		weighted += hardnessFor(s.Layer.Name) * s.Layer.Thickness
		totalThickness += s.Layer.Thickness
	}
	if totalThickness == 0 {
		return neutralRockHardness
	}
	return weighted / totalThickness
}

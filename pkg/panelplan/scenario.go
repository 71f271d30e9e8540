package panelplan

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
)

// Scenario is the on-disk request format a caller supplies end to
// end: the boundary, the boreholes (either raw layers or
// pre-computed attributes), and the Config tunables. It is the
// YAML shape testdata/*.yaml fixtures use for scenarios S1-S6, and
// what cmd/panelplan reads.
type Scenario struct {
	Boundary  []PointCfg    `yaml:"boundary"`
	Boreholes []BoreholeCfg `yaml:"boreholes"`
	Config    Config        `yaml:"config"`
}

// PointCfg is a YAML-friendly (x,y) pair.
type PointCfg struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LayerCfg is one stratigraphic unit, top to bottom.
type LayerCfg struct {
	Name      string  `yaml:"name"`
	Thickness float64 `yaml:"thickness"`
}

// AttributesCfg is the pre-computed-attributes alternative to Layers.
// Conversion copies the fields as given; geology.Process later fills
// any zero field from its documented default when it resolves the
// borehole.
type AttributesCfg struct {
	RockHardness    float64  `yaml:"rockHardness,omitempty"`
	GasContent      float64  `yaml:"gasContent,omitempty"`
	CoalThickness   float64  `yaml:"coalThickness,omitempty"`
	GroundWater     float64  `yaml:"groundWater,omitempty"`
	CalorificValue  float64  `yaml:"calorificValue,omitempty"`
	TopElevation    *float64 `yaml:"topElevation,omitempty"`
	BottomElevation *float64 `yaml:"bottomElevation,omitempty"`
	Depth           *float64 `yaml:"depth,omitempty"`
}

// BoreholeCfg is one YAML-described borehole: identity, location, and
// either a layer sequence or pre-computed attributes.
type BoreholeCfg struct {
	ID               string         `yaml:"id"`
	X                float64        `yaml:"x"`
	Y                float64        `yaml:"y"`
	SurfaceElevation *float64       `yaml:"surfaceElevation,omitempty"`
	TotalDepth       *float64       `yaml:"totalDepth,omitempty"`
	Layers           []LayerCfg     `yaml:"layers,omitempty"`
	Attributes       *AttributesCfg `yaml:"attributes,omitempty"`
}

// LoadScenario reads and converts a YAML scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return LoadScenarioFromBytes(data)
}

// LoadScenarioFromBytes parses a YAML scenario from a byte slice.
func LoadScenarioFromBytes(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := s.Config.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &s, nil
}

// Polygon converts the boundary to geometry.Polygon.
func (s *Scenario) Polygon() geometry.Polygon {
	pts := make(geometry.Polygon, len(s.Boundary))
	for i, p := range s.Boundary {
		pts[i] = geometry.Point{X: p.X, Y: p.Y}
	}
	return pts
}

// GeologyBoreholes converts the YAML boreholes into geology.Borehole
// values ready for Pipeline.BuildGeology.
func (s *Scenario) GeologyBoreholes() []*geology.Borehole {
	out := make([]*geology.Borehole, len(s.Boreholes))
	for i, b := range s.Boreholes {
		gb := &geology.Borehole{
			ID:               b.ID,
			Point:            geometry.Point{X: b.X, Y: b.Y},
			SurfaceElevation: b.SurfaceElevation,
			TotalDepth:       b.TotalDepth,
		}
		if b.Attributes != nil {
			gb.Attributes = &geology.Attributes{
				RockHardness:    b.Attributes.RockHardness,
				GasContent:      b.Attributes.GasContent,
				CoalThickness:   b.Attributes.CoalThickness,
				GroundWater:     b.Attributes.GroundWater,
				CalorificVal:    b.Attributes.CalorificValue,
				TopElevation:    b.Attributes.TopElevation,
				BottomElevation: b.Attributes.BottomElevation,
				Depth:           b.Attributes.Depth,
			}
		} else {
			layers := make([]geology.Layer, len(b.Layers))
			for j, l := range b.Layers {
				layers[j] = geology.Layer{Name: l.Name, Thickness: l.Thickness}
			}
			gb.Layers = layers
		}
		out[i] = gb
	}
	return out
}

package panelplan

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/panelplan/pkg/geology"
	"github.com/dshills/panelplan/pkg/geometry"
	"github.com/dshills/panelplan/pkg/layout"
	"github.com/dshills/panelplan/pkg/score"
)

// Config is the YAML-describable request a caller drives a session
// through: score weights, the coal-seam selection rule, and the
// layout overrides that feed DeriveParams. It carries no boundary or
// borehole data of its own — those are supplied directly to
// BuildGeology — so Hash only fingerprints the tunables a session's
// cached GeologyModel and ScoreBundle were built with.
type Config struct {
	Resolution int        `yaml:"resolution" json:"resolution"`
	Weights    WeightsCfg `yaml:"weights" json:"weights"`
	CoalSeam   string     `yaml:"coalSeam,omitempty" json:"coalSeam,omitempty"`
	Layout     LayoutCfg  `yaml:"layout" json:"layout"`
}

// WeightsCfg mirrors score.Weights with YAML tags.
type WeightsCfg struct {
	Safety   float64 `yaml:"safety" json:"safety"`
	Economic float64 `yaml:"economic" json:"economic"`
	Env      float64 `yaml:"env" json:"env"`
}

// ToWeights converts to the score package's plain Weights.
func (w WeightsCfg) ToWeights() score.Weights {
	return score.Weights{Safety: w.Safety, Economic: w.Economic, Env: w.Env}
}

// LayoutCfg mirrors layout.Overrides with YAML tags and pointer
// fields, so a field left absent from the document leaves the
// formula-derived value in place.
type LayoutCfg struct {
	Mode           string           `yaml:"mode" json:"mode"`
	PillarWidth    *float64         `yaml:"pillarWidth,omitempty" json:"pillarWidth,omitempty"`
	PanelWidth     *float64         `yaml:"panelWidth,omitempty" json:"panelWidth,omitempty"`
	PanelLength    *float64         `yaml:"panelLength,omitempty" json:"panelLength,omitempty"`
	BoundaryMargin *float64         `yaml:"boundaryMargin,omitempty" json:"boundaryMargin,omitempty"`
	RoadwayWidth   *float64         `yaml:"roadwayWidth,omitempty" json:"roadwayWidth,omitempty"`
	MinScore       *float64         `yaml:"minScore,omitempty" json:"minScore,omitempty"`
	Direction      string           `yaml:"direction,omitempty" json:"direction,omitempty"` // "auto" (default), "strike", "boundary"
	LockedPanels   []LockedPanelCfg `yaml:"lockedPanels,omitempty" json:"lockedPanels,omitempty"`
}

// LockedPanelCfg is a caller-supplied rectangle, in the same world
// coordinates as the boundary, that userEdits.lockedPanels preserves
// verbatim in the plan.
type LockedPanelCfg struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// ToLockedPanels converts the world-coordinate rectangles a caller
// supplies into layout.LockedPanel's packing-frame-local form, given
// the same rotation angle and pivot DeriveParams chose for this plan.
func ToLockedPanels(cfgs []LockedPanelCfg, frameAngleRad float64, pivot geometry.Point) []layout.LockedPanel {
	out := make([]layout.LockedPanel, len(cfgs))
	for i, c := range cfgs {
		corners := geometry.Polygon{
			{X: c.X, Y: c.Y},
			{X: c.X + c.W, Y: c.Y},
			{X: c.X + c.W, Y: c.Y + c.H},
			{X: c.X, Y: c.Y + c.H},
		}
		local := geometry.RotatePolygon(corners, -frameAngleRad, pivot)
		minX, maxX, minY, maxY := geometry.AxisAlignedExtents(local)
		out[i] = layout.LockedPanel{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
	}
	return out
}

// ToOverrides converts to layout.Overrides.
func (l LayoutCfg) ToOverrides() layout.Overrides {
	direction := layout.DirectionAuto
	switch l.Direction {
	case "strike":
		direction = layout.DirectionStrike
	case "boundary":
		direction = layout.DirectionBoundary
	}
	return layout.Overrides{
		PillarWidth:    l.PillarWidth,
		PanelWidth:     l.PanelWidth,
		PanelLength:    l.PanelLength,
		BoundaryMargin: l.BoundaryMargin,
		RoadwayWidth:   l.RoadwayWidth,
		MinScore:       l.MinScore,
		Direction:      direction,
	}
}

// scoreModes is the closed set of grids a plan may be driven by.
var scoreModes = map[string]bool{"safety": true, "economic": true, "env": true, "composite": true}

// Validate checks all configuration constraints, reporting the first
// failure found.
func (c *Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("resolution must be positive, got %d", c.Resolution)
	}
	if c.Layout.Mode == "" {
		c.Layout.Mode = "composite"
	}
	if !scoreModes[c.Layout.Mode] {
		return fmt.Errorf("layout.mode must be one of safety, economic, env, composite, got %q", c.Layout.Mode)
	}
	switch c.Layout.Direction {
	case "", "auto", "strike", "boundary":
	default:
		return fmt.Errorf("layout.direction must be one of auto, strike, boundary, got %q", c.Layout.Direction)
	}
	return nil
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates YAML configuration from a
// byte slice.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic fingerprint of the configuration. A
// caller that keeps its own session-token map can use it to detect
// whether a stored Config has drifted from the one a cached session
// was last built with, without needing to compare every field by
// hand. The pipeline is otherwise fully deterministic and carries no
// RNG, so unlike the teacher's identically-shaped Config.Hash (which
// seeds per-stage RNGs), this hash exists purely as a fingerprint, not
// a seed.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(c.Resolution))
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// CoalSeamSelection converts CoalSeam into geology.CoalSeamSelection.
func (c *Config) CoalSeamSelection() geology.CoalSeamSelection {
	return geology.CoalSeamSelection{Explicit: c.CoalSeam}
}

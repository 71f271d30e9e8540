package score

import "github.com/dshills/panelplan/pkg/geology"

// Formula computes the three base suitability dimensions for one
// processed borehole. Implementations must return values clamped to
// [0, 100]; Default implements the specification's reference rule
// set and is the only Formula this module ships, but callers may
// supply an alternative monotonic implementation without touching
// any other component.
type Formula interface {
	Safety(p *geology.Processed) float64
	Economic(p *geology.Processed) float64
	Environment(p *geology.Processed) float64
}

// DefaultFormula implements the specification's reference rule set.
type DefaultFormula struct{}

// Safety penalizes gas content linearly and rock hardness deviation
// from an optimum of 7 (Protodyakonov-style midpoint).
func (DefaultFormula) Safety(p *geology.Processed) float64 {
	v := 100 - 8*p.Attrs.GasContent - 5*abs(p.Attrs.RockHardness-7)
	return clamp(v, 0, 100)
}

// Economic rewards coal thickness linearly above a baseline.
func (DefaultFormula) Economic(p *geology.Processed) float64 {
	v := min(100, 20+15*p.CoalThickness)
	return clamp(v, 0, 100)
}

// Environment penalizes ground water linearly.
func (DefaultFormula) Environment(p *geology.Processed) float64 {
	v := 100 - 0.8*p.Attrs.GroundWater
	return clamp(v, 0, 100)
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

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

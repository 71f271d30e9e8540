package validate

import "fmt"

// PillarSpacingTolerance is the allowed deviation, in local units,
// between a measured inter-panel spacing and the designed pillar
// width before a warning is raised. Not documented elsewhere in the
// source material; treated as a tunable per spec.md's open question.
const PillarSpacingTolerance = 2.0

// Per-factor maxima; they sum to 100.
const (
	MaxGeologicalUniformity = 20.0
	MaxSafety               = 20.0
	MaxEconomic             = 15.0
	MaxTechnicalFit         = 15.0
	MaxEfficiency           = 10.0
	MaxVentilation          = 10.0
	MaxTransport            = 5.0
	MaxEnvironmental        = 5.0
)

// Grade is a closed letter-grade enum.
type Grade int

const (
	GradeAPlus Grade = iota
	GradeA
	GradeBPlus
	GradeB
	GradeC
	GradeD
)

// String returns the conventional letter-grade label.
func (g Grade) String() string {
	switch g {
	case GradeAPlus:
		return "A+"
	case GradeA:
		return "A"
	case GradeBPlus:
		return "B+"
	case GradeB:
		return "B"
	case GradeC:
		return "C"
	case GradeD:
		return "D"
	default:
		return fmt.Sprintf("Unknown(%d)", int(g))
	}
}

// GradeFor maps a total score in [0,100] to its letter grade.
func GradeFor(total float64) Grade {
	switch {
	case total >= 90:
		return GradeAPlus
	case total >= 80:
		return GradeA
	case total >= 70:
		return GradeBPlus
	case total >= 60:
		return GradeB
	case total >= 50:
		return GradeC
	default:
		return GradeD
	}
}

// PillarMeasurement is one consecutive-panel-pair spacing check.
type PillarMeasurement struct {
	PanelAID, PanelBID string
	Measured           float64
	Designed           float64
	Deviation          float64
	OutOfTolerance     bool
}

// PanelFactors holds the eight per-panel sub-scores, each bounded to
// its documented maximum.
type PanelFactors struct {
	GeologicalUniformity float64
	Safety               float64
	Economic             float64
	TechnicalFit         float64
	Efficiency           float64
	Ventilation          float64
	Transport            float64
	Environmental        float64
}

// Total sums the eight factors.
func (f PanelFactors) Total() float64 {
	return f.GeologicalUniformity + f.Safety + f.Economic + f.TechnicalFit +
		f.Efficiency + f.Ventilation + f.Transport + f.Environmental
}

// PanelResult is one panel's full validation outcome.
type PanelResult struct {
	PanelID     string
	Factors     PanelFactors
	Total       float64
	Grade       Grade
	Vetoed      bool
	VetoReasons []string
}

// Result is the complete C7 output.
type Result struct {
	PillarMeasurements []PillarMeasurement
	Panels             []PanelResult
	OverallScore       float64
	Warnings           []string
}

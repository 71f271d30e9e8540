package geology

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/dshills/panelplan/pkg/geometry"
)

// singularDet is the magnitude below which the plane-fit normal
// equations are treated as singular.
const singularDet = 1e-10

// PlaneFit is the least-squares plane z = a*x + b*y + c fitted through
// a set of (x, y, z) samples, together with the derived structural
// angles.
type PlaneFit struct {
	A, B, C float64

	// StrikeDeg, DipDirectionDeg are azimuths in [0, 360).
	// DipAngleDeg is in [0, 90].
	StrikeDeg, DipDirectionDeg, DipAngleDeg float64
}

// FitPlane solves the 3x3 least-squares normal equations for
// z = a*x + b*y + c over pts, via gonum's dense solver. If the normal
// matrix is singular (|det| < singularDet), it falls back to a = b =
// 0, c = mean(z), dipAngle = 0, per the specification's locked-in
// fallback.
func FitPlane(pts []geometry.Point, z []float64) PlaneFit {
	n := len(pts)
	if n == 0 {
		return PlaneFit{}
	}

	var sx, sy, sxx, syy, sxy, sz, sxz, syz float64
	for i, p := range pts {
		x, y, zi := p.X, p.Y, z[i]
		sx += x
		sy += y
		sxx += x * x
		syy += y * y
		sxy += x * y
		sz += zi
		sxz += x * zi
		syz += y * zi
	}
	nf := float64(n)

	normal := mat.NewDense(3, 3, []float64{
		sxx, sxy, sx,
		sxy, syy, sy,
		sx, sy, nf,
	})
	rhs := mat.NewVecDense(3, []float64{sxz, syz, sz})

	det := mat.Det(normal)
	meanZ := sz / nf
	if math.Abs(det) < singularDet {
		return PlaneFit{A: 0, B: 0, C: meanZ, DipAngleDeg: 0}
	}

	var coeffs mat.VecDense
	if err := coeffs.SolveVec(normal, rhs); err != nil {
		return PlaneFit{A: 0, B: 0, C: meanZ, DipAngleDeg: 0}
	}

	a, b, c := coeffs.AtVec(0), coeffs.AtVec(1), coeffs.AtVec(2)
	dipAngle := math.Atan(math.Hypot(a, b)) * 180 / math.Pi
	// The dip direction is the azimuth of steepest descent, i.e. of the
	// negated gradient (-a, -b).
	dipDirection := math.Atan2(-b, -a) * 180 / math.Pi
	dipDirection = normalizeDeg(dipDirection)
	strike := normalizeDeg(dipDirection + 90)

	return PlaneFit{
		A: a, B: b, C: c,
		StrikeDeg:       strike,
		DipDirectionDeg: dipDirection,
		DipAngleDeg:     dipAngle,
	}
}

func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

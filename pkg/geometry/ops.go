package geometry

import "math"

// PointInPolygon reports whether p lies inside polygon using the
// standard odd-parity ray-cast rule. Points exactly on an edge are
// unspecified: the function returns a deterministic answer for the
// same inputs, but callers must not rely on which one.
func PointInPolygon(p Point, polygon Polygon) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := polygon[i], polygon[j]
		if (vi.Y > p.Y) != (vj.Y > p.Y) {
			xCross := (vj.X-vi.X)*(p.Y-vi.Y)/(vj.Y-vi.Y) + vi.X
			if p.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// DistanceToSegment projects p onto the segment [a,b], clamping the
// projection parameter to [0,1], and returns the distance from p to
// that clamped projection.
func DistanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := a.Add(ab.Scale(t))
	return math.Hypot(p.X-proj.X, p.Y-proj.Y)
}

// ClosestPointOnPolyline returns the closest point on the polyline
// described by path to p, along with the distance to it. path must
// have at least two points.
func ClosestPointOnPolyline(p Point, path []Point) (Point, float64) {
	best := path[0]
	bestDist := math.Inf(1)
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		d := DistanceToSegment(p, a, b)
		if d < bestDist {
			bestDist = d
			best = closestOnSegment(p, a, b)
		}
	}
	return best, bestDist
}

func closestOnSegment(p, a, b Point) Point {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return a
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// RectanglesOverlap reports whether r1 and r2 overlap using an
// axis-aligned separating-axis test. Rectangles that only touch along
// a shared edge count as non-overlapping.
func RectanglesOverlap(r1, r2 Rectangle) bool {
	if r1.MaxX() <= r2.MinX || r2.MaxX() <= r1.MinX {
		return false
	}
	if r1.MaxY() <= r2.MinY || r2.MaxY() <= r1.MinY {
		return false
	}
	return true
}

// AxisAlignedExtents returns the bounding box of polygon as
// (minX, maxX, minY, maxY).
func AxisAlignedExtents(polygon Polygon) (minX, maxX, minY, maxY float64) {
	minX, maxX = math.Inf(1), math.Inf(-1)
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, v := range polygon {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return
}

// BoundaryLine selects the subsequence of polygon vertices that lie on
// the extremum of the chosen side (e.g. the maximum-Y vertices for
// SideNorth), falling back to the two extremum corners of the bounding
// box if fewer than two vertices qualify. The result traces the
// geometric path a main roadway follows along that side.
func BoundaryLine(polygon Polygon, side Side) []Point {
	if len(polygon) == 0 {
		return nil
	}
	minX, maxX, minY, maxY := AxisAlignedExtents(polygon)
	const eps = 1e-9

	var onExtremum func(p Point) bool
	switch side {
	case SideNorth:
		onExtremum = func(p Point) bool { return math.Abs(p.Y-maxY) <= eps }
	case SideSouth:
		onExtremum = func(p Point) bool { return math.Abs(p.Y-minY) <= eps }
	case SideEast:
		onExtremum = func(p Point) bool { return math.Abs(p.X-maxX) <= eps }
	case SideWest:
		onExtremum = func(p Point) bool { return math.Abs(p.X-minX) <= eps }
	}

	var candidates []Point
	for _, v := range polygon {
		if onExtremum(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) >= 2 {
		return candidates
	}

	// Fewer than two vertices sit exactly on the extremum: fall back to
	// the two extremum corners of the bounding box for this side.
	switch side {
	case SideNorth:
		return []Point{{X: minX, Y: maxY}, {X: maxX, Y: maxY}}
	case SideSouth:
		return []Point{{X: minX, Y: minY}, {X: maxX, Y: minY}}
	case SideEast:
		return []Point{{X: maxX, Y: minY}, {X: maxX, Y: maxY}}
	case SideWest:
		return []Point{{X: minX, Y: minY}, {X: minX, Y: maxY}}
	}
	return candidates
}

// Centroid returns the arithmetic mean of polygon's vertices. It is not
// the area centroid, but is sufficient as a tie-break reference point.
func Centroid(polygon Polygon) Point {
	var sx, sy float64
	for _, v := range polygon {
		sx += v.X
		sy += v.Y
	}
	n := float64(len(polygon))
	if n == 0 {
		return Point{}
	}
	return Point{X: sx / n, Y: sy / n}
}

// Rotate rotates point by angleRad radians (counter-clockwise) around
// pivot.
func Rotate(point Point, angleRad float64, pivot Point) Point {
	s, c := math.Sin(angleRad), math.Cos(angleRad)
	dx, dy := point.X-pivot.X, point.Y-pivot.Y
	return Point{
		X: pivot.X + dx*c - dy*s,
		Y: pivot.Y + dx*s + dy*c,
	}
}

// RotateInverse undoes Rotate: it rotates point by -angleRad around
// pivot, returning it to the original frame.
func RotateInverse(point Point, angleRad float64, pivot Point) Point {
	return Rotate(point, -angleRad, pivot)
}

// RotatePolygon rotates every vertex of polygon by angleRad around
// pivot, returning a new polygon.
func RotatePolygon(polygon Polygon, angleRad float64, pivot Point) Polygon {
	out := make(Polygon, len(polygon))
	for i, v := range polygon {
		out[i] = Rotate(v, angleRad, pivot)
	}
	return out
}

package geometry

import "fmt"

// Point is a planar coordinate in the local, unit-less system the whole
// pipeline operates in. No geodetic transform is ever applied to it.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Polygon is an ordered sequence of vertices describing a simple
// polygon. The last vertex need not repeat the first, and orientation
// (winding) is not significant to any operation in this package.
type Polygon []Point

// Rectangle is an axis-aligned rectangle described by its minimum
// corner and extents.
type Rectangle struct {
	MinX, MinY float64
	Width      float64
	Height     float64
}

// MaxX returns the rectangle's maximum X extent.
func (r Rectangle) MaxX() float64 { return r.MinX + r.Width }

// MaxY returns the rectangle's maximum Y extent.
func (r Rectangle) MaxY() float64 { return r.MinY + r.Height }

// Center returns the rectangle's center point.
func (r Rectangle) Center() Point {
	return Point{X: r.MinX + r.Width/2, Y: r.MinY + r.Height/2}
}

// Segment is a directed line segment from P to Q.
type Segment struct {
	P, Q Point
}

// Side identifies one of the four cardinal sides of a bounding box.
type Side int

const (
	SideNorth Side = iota
	SideSouth
	SideEast
	SideWest
)

// String returns the string representation of a Side.
func (s Side) String() string {
	switch s {
	case SideNorth:
		return "N"
	case SideSouth:
		return "S"
	case SideEast:
		return "E"
	case SideWest:
		return "W"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Package geometry provides the planar primitives shared by the rest of
// the pipeline: point-in-polygon, segment distance, rectangle overlap,
// bounding extents, boundary-side tracing, and axis rotation.
//
// All operations work in a planar, unit-less local coordinate system.
// Callers are responsible for rejecting malformed polygons (fewer than
// three vertices, non-finite coordinates) before calling into this
// package.
package geometry

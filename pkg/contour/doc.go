// Package contour extracts iso-level line segments from a grid using
// marching squares. Segments are not polyline-stitched; callers
// receive the raw per-cell segment list.
package contour

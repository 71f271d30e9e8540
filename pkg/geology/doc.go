// Package geology aggregates per-borehole layer data into a
// GeologyModel: top/bottom/thickness grids, strike, dip, and depth
// statistics. It is the first stage to run after geometry and
// interpolation, and every later stage (scoring, contouring, layout)
// consumes its output.
package geology

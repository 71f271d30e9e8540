// Package panelplan is the C8 pipeline façade: it orchestrates the
// geometry, interpolation, geology, score, contour, layout, and
// validate packages behind the three-operation contract a caller
// drives a request through (buildGeology, score, plan), keyed by an
// opaque session token.
package panelplan

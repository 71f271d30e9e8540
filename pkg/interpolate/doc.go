// Package interpolate fills a regular grid from scattered borehole
// samples using inverse-distance weighting (IDW), masked by a
// boundary polygon. Kriging and other geostatistical methods are out
// of scope for this version.
package interpolate

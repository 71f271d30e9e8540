// Package export renders a panel-layout plan to diagnostic formats,
// currently an annotated SVG of the boundary, score heatmap, panels,
// pillars and roadways.
package export

// Package score computes per-borehole safety, economic and
// environmental suitability scores from a deterministic rule set, a
// weighted composite, and the four corresponding IDW grids. The
// per-borehole formulas are exposed behind the Formula strategy
// interface so they can be replaced without touching any other
// component (spec design note: "score-formula tunability").
package score

// Package validate implements C7: measures pillar-spacing compliance
// against the designed pillar width, scores each panel across eight
// weighted factors, applies the veto rules, and rolls everything up
// into an overall design grade.
package validate

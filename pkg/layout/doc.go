// Package layout implements C6: derives mining-panel design
// parameters from geology, strip-packs panels along the chosen
// orientation, and places the two boundary main roadways plus each
// panel's cut-through connectors.
package layout

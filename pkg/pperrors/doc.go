// Package pperrors defines the closed error taxonomy shared by every
// pipeline component. Each component surfaces its own errors
// unchanged; the façade is the only layer allowed to attach extra
// context (see pkg/panelplan).
package pperrors

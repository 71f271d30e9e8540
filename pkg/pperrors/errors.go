package pperrors

import (
	"context"
	"errors"
	"fmt"
)

// Kind identifies one of the pipeline's documented failure modes. It
// is a closed enum: callers may switch on it exhaustively.
type Kind int

const (
	// InvalidBoundary: fewer than 3 vertices, or non-finite coordinates.
	InvalidBoundary Kind = iota
	// NoBoreholes: the borehole list was empty.
	NoBoreholes
	// NoValidBorehole: every borehole was missing required fields.
	NoValidBorehole
	// NoCoalFound: automatic selection found no coal layer at all.
	NoCoalFound
	// CoalSeamNotFound: the requested seam-name substring matched no layer.
	CoalSeamNotFound
	// DegenerateBoundary: the boundary's bounding box has zero area.
	DegenerateBoundary
	// DependencyMissing: a later stage was invoked before its prerequisite.
	DependencyMissing
	// InvalidMode: the requested score mode is not one of the enumerated set.
	InvalidMode
	// Cancelled: the request was cooperatively cancelled.
	Cancelled
	// Timeout: the wall-clock budget expired.
	Timeout
)

// String returns the wire-stable name of a Kind.
func (k Kind) String() string {
	switch k {
	case InvalidBoundary:
		return "InvalidBoundary"
	case NoBoreholes:
		return "NoBoreholes"
	case NoValidBorehole:
		return "NoValidBorehole"
	case NoCoalFound:
		return "NoCoalFound"
	case CoalSeamNotFound:
		return "CoalSeamNotFound"
	case DegenerateBoundary:
		return "DegenerateBoundary"
	case DependencyMissing:
		return "DependencyMissing"
	case InvalidMode:
		return "InvalidMode"
	case Cancelled:
		return "Cancelled"
	case Timeout:
		return "Timeout"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Error is the typed error every component and the façade return. On
// any Error, callers must assume no partial result was produced.
type Error struct {
	Kind    Kind
	Message string
	Details any // e.g. []string of available coal names for CoalSeamNotFound
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithDetails attaches details to an *Error and returns it.
func (e *Error) WithDetails(details any) *Error {
	e.Details = details
	return e
}

// FromContextErr translates a context.Context error — the only kind of
// error a row/level-parallel errgroup stage ever returns — into the
// documented Cancelled/Timeout pipeline error, so a cancellation
// surfaced from inside a concurrent grid fill or contour extraction is
// indistinguishable from one surfaced at the façade boundary.
func FromContextErr(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return New(Timeout, "wall-clock budget expired")
	}
	return New(Cancelled, "request cancelled")
}

// Is reports whether err (or anything it wraps) is a pipeline *Error
// of the given kind.
func Is(err error, kind Kind) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Kind == kind
}

package core

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a placement error.
type Kind int

const (
	// KindUnknownBel: a constraint references a bel name the catalog does not know.
	KindUnknownBel Kind = iota
	// KindTypeMismatch: a user-constrained bel's type does not match the cell's type.
	KindTypeMismatch
	// KindUnknownBelType: a cell's type has no bels in the catalog.
	KindUnknownBelType
	// KindResourceExhausted: Phase A's cursor ran out of bels of some type.
	KindResourceExhausted
	// KindPlacementFailure: Phase B found no legal bel for a cell.
	KindPlacementFailure
	// KindAlreadyBound: a bind call targeted an already-bound resource at >= strength.
	KindAlreadyBound
	// KindNotBound: an unbind call targeted an unbound resource.
	KindNotBound
	// KindInvariantFailure: check() detected a structural invariant violation.
	KindInvariantFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnknownBel:
		return "UnknownBel"
	case KindTypeMismatch:
		return "TypeMismatch"
	case KindUnknownBelType:
		return "UnknownBelType"
	case KindResourceExhausted:
		return "ResourceExhausted"
	case KindPlacementFailure:
		return "PlacementFailure"
	case KindAlreadyBound:
		return "AlreadyBound"
	case KindNotBound:
		return "NotBound"
	case KindInvariantFailure:
		return "InvariantFailure"
	default:
		return "Unknown"
	}
}

// Downgradable reports whether force handling may turn this error kind into
// a logged warning instead of aborting the phase. Binding-store preconditions
// and integrity failures are always fatal — they indicate a bug, not a
// legalisation failure.
func (k Kind) Downgradable() bool {
	switch k {
	case KindUnknownBel, KindTypeMismatch, KindUnknownBelType, KindResourceExhausted, KindPlacementFailure:
		return true
	default:
		return false
	}
}

// PlacementError carries a Kind alongside the wrapped context (cell/bel
// names, etc.) that produced it.
type PlacementError struct {
	Kind Kind
	err  error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.err)
}

func (e *PlacementError) Unwrap() error {
	return e.err
}

func newErrorf(kind Kind, format string, args ...interface{}) *PlacementError {
	return &PlacementError{Kind: kind, err: pkgerrors.Errorf(format, args...)}
}

func wrapErrorf(kind Kind, cause error, format string, args ...interface{}) *PlacementError {
	return &PlacementError{Kind: kind, err: pkgerrors.Wrapf(cause, format, args...)}
}

// KindOf extracts the Kind from err, if err is (or wraps) a *PlacementError.
func KindOf(err error) (Kind, bool) {
	var pe *PlacementError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

package internal

import (
	"fmt"

	"go.trai.ch/zerr"
)

type FailureKind int

const (
	// FailureError is a computation that returned a non-nil error.
	FailureError FailureKind = iota
	// FailurePanic is a computation that panicked.
	FailurePanic
	// FailureUnpublished is a computation that returned without writing all of its outputs.
	FailureUnpublished
)

func (k FailureKind) String() string {
	switch k {
	case FailureError:
		return "error"
	case FailurePanic:
		return "panic"
	case FailureUnpublished:
		return "unpublished"
	default:
		return "unknown"
	}
}

// Failure is a captured computation failure, stored on a node in place of a value
// and replayed as-is on every read until the node is invalidated.
type Failure struct {
	Kind    FailureKind
	Message string

	// name of the action whose run failed
	Origin string

	cause error
}

func newFailure(kind FailureKind, origin string, cause error) *Failure {
	return &Failure{
		Kind:    kind,
		Message: cause.Error(),
		Origin:  origin,
		cause:   cause,
	}
}

// capture turns whatever a run produced (a returned error or a recovered panic) into a capsule.
// A capsule replayed from a dependency is kept as-is so it propagates unchanged.
func capture(origin string, r any, panicked bool) *Failure {
	if f, ok := r.(*Failure); ok {
		return f
	}

	if !panicked {
		return newFailure(FailureError, origin, r.(error))
	}

	if err, ok := r.(error); ok {
		return newFailure(FailurePanic, origin, err)
	}

	return newFailure(FailurePanic, origin, zerr.With(zerr.New(fmt.Sprint(r)), "action", origin))
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrComputation.Error(), f.Origin, f.Kind, f.Message)
}

// Cause returns the error the computation originally failed with.
func (f *Failure) Cause() error {
	return f.cause
}

func (f *Failure) Unwrap() []error {
	return []error{ErrComputation, f.cause}
}

package lazy

import "github.com/AnatoleLucet/lazy/internal"

// Misuse of the graph panics with an error matching one of these sentinels.
var (
	// ErrConstruction is raised when a value is created for an element type the cache cannot own.
	ErrConstruction = internal.ErrConstruction

	// ErrStaleRead is raised by Peek on a dirty value, or when a dirty value has nothing to produce it.
	ErrStaleRead = internal.ErrStaleRead

	// ErrCycle is raised when a value is read while it is being recomputed.
	ErrCycle = internal.ErrCycle

	// ErrReleased is raised when a released value is used, and returned when its handle is resolved.
	ErrReleased = internal.ErrReleased

	// ErrNotWritable is raised when an action output is written from outside its action.
	ErrNotWritable = internal.ErrNotWritable
)

// Failures of computations are captured, never raised as misuse.
var (
	// ErrComputation matches every Failure.
	ErrComputation = internal.ErrComputation

	// ErrUnpublished is the cause of the Failure of a run that did not write all of its outputs.
	ErrUnpublished = internal.ErrUnpublished

	// ErrTypeMismatch is returned when a handle resolves to a value of another element type.
	ErrTypeMismatch = internal.ErrTypeMismatch
)

// Failure is a captured computation failure. It is held by a value in place of its content
// and handed out unchanged by every read until the value is invalidated.
type Failure = internal.Failure

type FailureKind = internal.FailureKind

const (
	FailureError       = internal.FailureError
	FailurePanic       = internal.FailurePanic
	FailureUnpublished = internal.FailureUnpublished
)

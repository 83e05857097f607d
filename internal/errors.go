package internal

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConstruction is raised when a value is created for an element type the cache cannot own.
	ErrConstruction = zerr.New("ineligible element type")

	// ErrStaleRead is raised when a dirty node is read without being pulled.
	ErrStaleRead = zerr.New("stale read")

	// ErrCycle is raised when a node is pulled while it is already being recomputed.
	ErrCycle = zerr.New("dependency cycle")

	// ErrReleased is raised when a node is used after its owner released it.
	ErrReleased = zerr.New("node released")

	// ErrNotWritable is raised when an action output is written outside of its action's run.
	ErrNotWritable = zerr.New("output not writable")

	// ErrComputation is the sentinel every failure capsule matches.
	ErrComputation = zerr.New("computation failed")

	// ErrUnpublished is captured when a successful run leaves one of its outputs unwritten.
	ErrUnpublished = zerr.New("output not published")

	// ErrTypeMismatch is returned when a handle resolves to a value of another element type.
	ErrTypeMismatch = zerr.New("element type mismatch")
)

// programmer errors abort the current operation and are never captured as failures
var programmerErrors = []error{ErrConstruction, ErrStaleRead, ErrCycle, ErrReleased, ErrNotWritable}

// IsProgrammerError reports whether a recovered panic value signals graph misuse.
func IsProgrammerError(r any) bool {
	err, ok := r.(error)
	if !ok {
		return false
	}

	for _, target := range programmerErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

func misuse(sentinel error, msg, key, name string) error {
	return zerr.With(zerr.Wrap(sentinel, msg), key, name)
}

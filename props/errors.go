package props

import "go.trai.ch/zerr"

var (
	// ErrDuplicateProp is raised when a prop name is added twice to the same manager.
	ErrDuplicateProp = zerr.New("prop already exists")

	// ErrUnknownProp is returned when a document sets a prop the manager does not have.
	ErrUnknownProp = zerr.New("unknown prop")

	// ErrInvalidValue is returned when a value cannot be decoded into the prop's type.
	ErrInvalidValue = zerr.New("invalid prop value")

	// ErrMissingProp is returned by Validate for a required prop that was never set.
	ErrMissingProp = zerr.New("required prop not set")
)

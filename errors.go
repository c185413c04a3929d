// File: jitflags/errors.go
package jitflags

import "errors"

var (
	// ErrUnknownFlag indicates an argument named a flag that is not in the
	// descriptor list it was parsed against.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrBadValue indicates a flag value that could not be converted to the
	// flag's type.
	ErrBadValue = errors.New("invalid flag value")
)

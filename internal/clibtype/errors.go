package clibtype

import "errors"

// Sentinel errors.
var (
	// ErrInvalidFormat is returned when the container does not follow the CLIB layout.
	ErrInvalidFormat = errors.New("clib: invalid format")

	// ErrMagicMismatch is returned when the leading signature is not the CLIB magic.
	ErrMagicMismatch = errors.New("magic does not match")

	// ErrInvalidCapacity is returned when a bounded read is given no room for content.
	ErrInvalidCapacity = errors.New("invalid field capacity")
)

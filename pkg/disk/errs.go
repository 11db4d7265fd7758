package disk

import "errors"

var (
	// ErrUnknownPolicy indicates an unrecognised -s scheduler symbol.
	ErrUnknownPolicy = errors.New("disk: unknown scheduler spec")

	// ErrMalformedTrace indicates a trace line did not parse as
	// "arrival_time target_track".
	ErrMalformedTrace = errors.New("disk: malformed trace line")
)

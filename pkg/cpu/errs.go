package cpu

import "errors"

var (
	// ErrUnknownPolicy indicates an unrecognised -s scheduler symbol.
	ErrUnknownPolicy = errors.New("cpu: unknown scheduler spec")

	// ErrMalformedTrace indicates a trace line did not parse as
	// "arrival total_cpu max_cpu_burst max_io_burst".
	ErrMalformedTrace = errors.New("cpu: malformed trace line")
)

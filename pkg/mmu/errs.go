package mmu

import "errors"

var (
	// ErrUnknownPager indicates an unrecognised -a pager symbol.
	ErrUnknownPager = errors.New("mmu: unknown pager spec")

	// ErrMalformedTrace indicates the process/VMA preamble or instruction
	// stream did not parse as spec.md §6 describes.
	ErrMalformedTrace = errors.New("mmu: malformed trace")
)

package region

import "errors"

var (
	// ErrExhausted indicates the region cannot be extended by the requested amount.
	ErrExhausted = errors.New("region: address space exhausted")

	// ErrClosed indicates the region was used after Close.
	ErrClosed = errors.New("region: closed")
)

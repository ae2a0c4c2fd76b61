package arena

import "errors"

var (
	// ErrOutOfMemory indicates the region could not be extended, or that a
	// requested size cannot be represented.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrCorrupt indicates Verify found a broken block chain.
	ErrCorrupt = errors.New("arena: corrupt block chain")
)

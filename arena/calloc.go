package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Calloc allocates count*size bytes and zeroes them. A product that does not
// fit in a uint64 fails with ErrOutOfMemory before anything is allocated.
func (a *Arena) Calloc(count, size uint64) (Ptr, error) {
	a.stats.CallocCalls++
	p, err := a.calloc(count, size)
	a.trace("calloc", "count", count, "size", size, "ptr", p, "err", err)
	return p, err
}

func (a *Arena) calloc(count, size uint64) (Ptr, error) {
	total, ok := buf.MulOverflowSafe(count, size)
	if !ok {
		return Nil, fmt.Errorf("calloc %d x %d bytes: %w", count, size, ErrOutOfMemory)
	}
	p, err := a.alloc(total)
	if err != nil || p == Nil {
		return p, err
	}
	clear(a.Bytes(p)[:total])
	return p, nil
}

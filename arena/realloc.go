package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Realloc resizes the block behind p to at least size bytes.
//
//   - Realloc(Nil, n) is Alloc(n).
//   - Realloc(p, 0) frees p and returns Nil.
//   - Shrinking, or growing over a free right neighbour, keeps p. Any excess
//     large enough for its own block is split off and freed.
//   - Otherwise the payload moves: a new block is allocated, the first
//     min(old, new) bytes are copied and p is freed.
//
// On failure the original block is left untouched and still owned by the
// caller.
func (a *Arena) Realloc(p Ptr, size uint64) (Ptr, error) {
	a.stats.ReallocCalls++
	np, err := a.realloc(p, size)
	a.trace("realloc", "ptr", p, "size", size, "result", np, "block", a.UsableSize(np), "err", err)
	return np, err
}

func (a *Arena) realloc(p Ptr, size uint64) (Ptr, error) {
	if p == Nil {
		return a.alloc(size)
	}
	if size == 0 {
		a.free(p)
		return Nil, nil
	}
	target, ok := format.AlignUp(size)
	if !ok {
		return Nil, fmt.Errorf("realloc to %d bytes: %w", size, ErrOutOfMemory)
	}

	off := p.header()
	h := a.header(off)

	// Shrink or exact fit.
	if h.Size >= target {
		a.trim(off, target)
		return p, nil
	}

	// Grow over a free right neighbour.
	if h.Next != format.NoBlock {
		next := a.header(h.Next)
		if next.Free && h.Size+format.HeaderSize+next.Size >= target {
			a.absorbInto(off, h.Next)
			a.stats.CoalesceForward++
			a.trim(off, target)
			a.stats.InPlaceGrows++
			return p, nil
		}
	}

	// Relocate. Nothing is touched until the new block exists.
	np, err := a.alloc(size)
	if err != nil {
		return Nil, err
	}
	copy(a.Bytes(np), a.Bytes(p)[:min(h.Size, target)])
	a.free(p)
	a.stats.Relocations++
	return np, nil
}

// trim cuts an allocated block down to need bytes. The split-off tail is
// freed and merged forward so no two free blocks end up adjacent.
func (a *Arena) trim(off, need uint64) {
	if !a.split(off, need) {
		return
	}
	tail := a.header(off).Next
	for a.absorbNext(tail) {
		a.stats.CoalesceForward++
	}
}

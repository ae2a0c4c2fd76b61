package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Alloc returns a handle to at least size bytes of uninitialised memory.
//
// Alloc(0) returns (Nil, nil) and leaves the arena untouched. When the region
// cannot supply more memory Alloc returns ErrOutOfMemory and the chain is left
// exactly as it was.
func (a *Arena) Alloc(size uint64) (Ptr, error) {
	a.stats.AllocCalls++
	p, err := a.alloc(size)
	a.trace("alloc", "size", size, "ptr", p, "block", a.UsableSize(p), "err", err)
	return p, err
}

func (a *Arena) alloc(size uint64) (Ptr, error) {
	if size == 0 {
		return Nil, nil
	}
	need, ok := format.AlignUp(size)
	if !ok {
		return Nil, fmt.Errorf("alloc %d bytes: %w", size, ErrOutOfMemory)
	}

	if !a.initialized() {
		if err := a.init(need); err != nil {
			return Nil, err
		}
	}

	// First fit in address order.
	for off := a.head; off != format.NoBlock; {
		h := a.header(off)
		if h.Free && h.Size >= need {
			a.split(off, need)
			a.markUsed(off)
			a.stats.AllocFastPath++
			return payload(off), nil
		}
		off = h.Next
	}

	return a.extend(need)
}

// init obtains the first chunk and stores it as the sole free block.
func (a *Arena) init(need uint64) error {
	request := a.minChunk
	if format.HeaderSize+need > request {
		request = format.HeaderSize + need + format.Alignment
	}

	off, err := a.src.Extend(request)
	if err != nil {
		return fmt.Errorf("initial chunk of %d bytes: %w: %w", request, ErrOutOfMemory, err)
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += request

	a.setHeader(off, format.Header{
		Size: request - format.HeaderSize,
		Free: true,
		Next: format.NoBlock,
		Prev: format.NoBlock,
	})
	a.head = off
	a.trace("grow", "bytes", request, "at", off, "initial", true)
	return nil
}

// extend appends a new allocated block after the current tail. The block
// covers every byte requested, including the alignment slack, so the chain
// keeps spanning the whole region.
func (a *Arena) extend(need uint64) (Ptr, error) {
	last := a.last()
	request := format.HeaderSize + need + format.Alignment

	off, err := a.src.Extend(request)
	if err != nil {
		return Nil, fmt.Errorf("extend by %d bytes: %w: %w", request, ErrOutOfMemory, err)
	}
	a.stats.GrowCalls++
	a.stats.GrowBytes += request
	a.stats.AllocSlowPath++

	a.setHeader(off, format.Header{
		Size: request - format.HeaderSize,
		Free: false,
		Next: format.NoBlock,
		Prev: last,
	})
	lh := a.header(last)
	lh.Next = off
	a.setHeader(last, lh)

	a.trace("grow", "bytes", request, "at", off, "initial", false)
	return payload(off), nil
}

// last walks to the tail of the chain.
func (a *Arena) last() uint64 {
	off := a.head
	for {
		next := a.header(off).Next
		if next == format.NoBlock {
			return off
		}
		off = next
	}
}

// split shrinks the block at off to need bytes when the remainder can host a
// header plus one alignment unit, linking the remainder as a free block right
// after it. Smaller remainders stay with the block. Reports whether it split.
func (a *Arena) split(off, need uint64) bool {
	h := a.header(off)
	if h.Size < need+format.SplitThreshold {
		return false
	}

	tail := off + format.HeaderSize + need
	a.setHeader(tail, format.Header{
		Size: h.Size - need - format.HeaderSize,
		Free: true,
		Next: h.Next,
		Prev: off,
	})
	if h.Next != format.NoBlock {
		a.setPrev(h.Next, tail)
	}

	h.Size = need
	h.Next = tail
	a.setHeader(off, h)
	a.stats.SplitCount++
	return true
}

func (a *Arena) markUsed(off uint64) {
	h := a.header(off)
	h.Free = false
	a.setHeader(off, h)
}

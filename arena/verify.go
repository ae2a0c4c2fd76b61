package arena

import (
	"fmt"
	"iter"

	"github.com/joshuapare/heapkit/internal/format"
)

// Blocks yields every block of the chain in address order. The chain must not
// be modified while iterating.
func (a *Arena) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		if !a.initialized() {
			return
		}
		for off := a.head; off != format.NoBlock; {
			h := a.header(off)
			if !yield(Block{Offset: off, Ptr: payload(off), Size: h.Size, Free: h.Free}) {
				return
			}
			off = h.Next
		}
	}
}

// Verify walks the chain and checks its structural invariants:
//
//   - blocks are contiguous and in address order, from the head to the end
//     of the region, with no gaps or overlaps
//   - prev/next links agree and the head has no predecessor
//   - every payload size is a multiple of Alignment
//   - no two free blocks are adjacent
//
// Errors wrap ErrCorrupt.
func (a *Arena) Verify() error {
	if !a.initialized() {
		return nil
	}
	data := a.src.Bytes()
	end := uint64(len(data))

	prev := format.NoBlock
	prevFree := false
	expect := a.head
	// Every block is at least one header long, which bounds the walk even
	// if the links form a cycle.
	budget := end/format.HeaderSize + 1

	for off := a.head; off != format.NoBlock; budget-- {
		if budget == 0 {
			return fmt.Errorf("%w: cycle detected near %#x", ErrCorrupt, off)
		}
		if off != expect {
			return fmt.Errorf("%w: block at %#x, expected %#x", ErrCorrupt, off, expect)
		}
		h, err := format.CheckHeader(data, off)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if h.Prev != prev {
			return fmt.Errorf("%w: block at %#x has prev %#x, expected %#x", ErrCorrupt, off, h.Prev, prev)
		}
		if h.Free && prevFree {
			return fmt.Errorf("%w: adjacent free blocks at %#x and %#x", ErrCorrupt, prev, off)
		}
		prev, prevFree = off, h.Free
		expect = h.End(off)
		off = h.Next
	}

	if expect != end {
		return fmt.Errorf("%w: chain ends at %#x, region ends at %#x", ErrCorrupt, expect, end)
	}
	return nil
}

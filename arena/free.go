package arena

import "github.com/joshuapare/heapkit/internal/format"

// Free returns the block behind p to the arena and merges it with free
// neighbours. Free(Nil) and freeing an already free block are no-ops.
func (a *Arena) Free(p Ptr) {
	a.stats.FreeCalls++
	a.free(p)
	a.trace("free", "ptr", p)
}

func (a *Arena) free(p Ptr) {
	if p == Nil {
		return
	}
	off := p.header()
	h := a.header(off)
	if h.Free {
		a.stats.DoubleFrees++
		return
	}
	a.stats.BytesFreed += h.Size
	h.Free = true
	a.setHeader(off, h)
	a.coalesce(off)
}

// coalesce merges the free block at off with free neighbours: forward until
// an allocated block or the tail, then once backward. It returns the header
// offset of the merged block.
func (a *Arena) coalesce(off uint64) uint64 {
	for a.absorbNext(off) {
		a.stats.CoalesceForward++
	}

	h := a.header(off)
	if h.Prev == format.NoBlock {
		return off
	}
	prev := a.header(h.Prev)
	if !prev.Free {
		return off
	}
	a.stats.CoalesceBackward++
	return a.absorbInto(h.Prev, off)
}

// absorbNext grows the block at off over its right neighbour when that
// neighbour is free. The absorbed header stops being part of the chain.
func (a *Arena) absorbNext(off uint64) bool {
	h := a.header(off)
	if h.Next == format.NoBlock {
		return false
	}
	if !a.header(h.Next).Free {
		return false
	}
	a.absorbInto(off, h.Next)
	return true
}

// absorbInto merges the block at victim into its left neighbour dst and
// returns dst. victim must directly follow dst.
func (a *Arena) absorbInto(dst, victim uint64) uint64 {
	d := a.header(dst)
	v := a.header(victim)

	d.Size += format.HeaderSize + v.Size
	d.Next = v.Next
	a.setHeader(dst, d)
	if v.Next != format.NoBlock {
		a.setPrev(v.Next, dst)
	}
	return dst
}

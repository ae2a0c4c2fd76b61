package format

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/buf"
)

// Header is the decoded form of a block header. See HeaderSize for the
// on-arena layout.
type Header struct {
	Size uint64 // Payload bytes, multiple of Alignment
	Free bool
	Next uint64 // Header offset of the next block or NoBlock
	Prev uint64 // Header offset of the previous block or NoBlock
}

// End returns the offset one past the last payload byte of the block whose
// header sits at off.
func (h Header) End(off uint64) uint64 {
	return off + HeaderSize + h.Size
}

// ReadHeader decodes the header at off. The caller must ensure off+HeaderSize
// is within b.
func ReadHeader(b []byte, off uint64) Header {
	return Header{
		Size: ReadU64(b, off+SizeOffset),
		Free: ReadU64(b, off+FlagsOffset)&FlagFree != 0,
		Next: ReadU64(b, off+NextOffset),
		Prev: ReadU64(b, off+PrevOffset),
	}
}

// WriteHeader encodes h at off.
func WriteHeader(b []byte, off uint64, h Header) {
	var flags uint64
	if h.Free {
		flags |= FlagFree
	}
	PutU64(b, off+SizeOffset, h.Size)
	PutU64(b, off+FlagsOffset, flags)
	PutU64(b, off+NextOffset, h.Next)
	PutU64(b, off+PrevOffset, h.Prev)
}

// CheckHeader decodes the header at off after bounds checking it against b.
func CheckHeader(b []byte, off uint64) (Header, error) {
	if !buf.Has(b, off, HeaderSize) {
		return Header{}, fmt.Errorf("header at %#x: %w", off, ErrTruncated)
	}
	h := ReadHeader(b, off)
	if !buf.Has(b, off+HeaderSize, h.Size) {
		return Header{}, fmt.Errorf("header at %#x: size %d: %w", off, h.Size, ErrTruncated)
	}
	if !IsAligned(h.Size) {
		return Header{}, fmt.Errorf("header at %#x: %w (%d)", off, ErrMisaligned, h.Size)
	}
	return h, nil
}

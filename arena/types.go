package arena

import (
	"fmt"

	"github.com/joshuapare/heapkit/internal/format"
)

// Ptr is a handle to an allocated payload: its byte offset inside the region.
// The zero value is Nil.
type Ptr uint64

// Nil is the null handle. No block can produce it because the first header
// occupies offset 0.
const Nil Ptr = 0

// HeaderSize is the per-block overhead in bytes.
const HeaderSize = format.HeaderSize

// Alignment is the unit every payload size is rounded up to.
const Alignment = format.Alignment

func (p Ptr) String() string {
	if p == Nil {
		return "nil"
	}
	return fmt.Sprintf("%#x", uint64(p))
}

// header returns the header offset for a payload handle.
func (p Ptr) header() uint64 { return uint64(p) - format.HeaderSize }

// payload returns the handle for the block whose header sits at off.
func payload(off uint64) Ptr { return Ptr(off + format.HeaderSize) }

// Block describes one block of the chain, as reported by Blocks.
type Block struct {
	Offset uint64 // Header offset
	Ptr    Ptr    // Payload handle
	Size   uint64 // Payload bytes
	Free   bool
}

// Source is the memory collaborator behind an arena. It behaves like a
// program break: Extend appends n bytes and returns the offset of the first
// one, and bytes already handed out never move.
type Source interface {
	Extend(n uint64) (uint64, error)
	Bytes() []byte
	Len() uint64
	Close() error
}

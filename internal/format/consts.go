// Package format describes the in-band layout of the heap arena: block header
// fields, alignment rules and the little-endian codecs used to read and write
// them. It is kept free of allocation policy so the allocator can be reasoned
// about separately from the byte layout it maintains.
package format

const (
	// Alignment is the byte boundary every payload size is rounded up to.
	Alignment = 16

	// AlignmentMask is Alignment-1, used with & ^AlignmentMask to round.
	AlignmentMask = Alignment - 1

	// HeaderSize is the padded size of a block header. Payloads start at
	// header offset + HeaderSize, so a payload is 16-byte aligned whenever its
	// header is.
	//
	// Block header layout (little-endian):
	//
	//	Offset  Size  Description
	//	0x00    8     Payload size in bytes (excludes the header)
	//	0x08    8     Flags. Bit 0 set => block is free
	//	0x10    8     Header offset of the next block, NoBlock at the tail
	//	0x18    8     Header offset of the previous block, NoBlock at the head
	HeaderSize = 0x20

	// SizeOffset is the offset of the payload size field.
	SizeOffset = 0x00

	// FlagsOffset is the offset of the flags field.
	FlagsOffset = 0x08

	// NextOffset is the offset of the next-block link.
	NextOffset = 0x10

	// PrevOffset is the offset of the previous-block link.
	PrevOffset = 0x18

	// FlagFree marks a block as available for allocation.
	FlagFree = 1 << 0

	// MinChunkSize is the size of the first request made to the memory
	// source. Larger first requests are served with header + size + Alignment.
	MinChunkSize = 64 * 1024

	// SplitThreshold is the smallest remainder that is carved into its own
	// free block: one header plus one alignment unit of payload.
	SplitThreshold = HeaderSize + Alignment

	// NoBlock is the link value for "no neighbour".
	NoBlock = ^uint64(0)
)

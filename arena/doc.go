// Package arena implements a first-fit heap allocator over a single growable
// memory region.
//
// # Overview
//
// The arena owns one address-ordered, doubly linked chain of blocks. Every
// block is a 32-byte header followed by its payload, stored in-band in the
// region, and the chain covers the region byte for byte. Free status is a flag
// in the header; there is no separate free-list index and block discovery is a
// linear scan from the head.
//
// # Operations
//
//   - Alloc(size): first fit, splitting the chosen block when the remainder can
//     host a header plus 16 bytes; grows the region when nothing fits
//   - Free(p): marks the block free and coalesces with free neighbours in both
//     directions
//   - Calloc(count, size): overflow-checked Alloc plus zero fill
//   - Realloc(p, size): shrink in place, grow in place by absorbing a free right
//     neighbour, or relocate
//
// # Handles
//
// Alloc returns a Ptr: the payload offset inside the region. The header of a
// block always sits exactly HeaderSize bytes before its Ptr, so mapping a
// handle back to its metadata is a subtraction. Bytes(p) returns the payload as
// a slice; it is a loan that ends when the block is freed or relocated.
//
// Handles are not validated. Passing a Ptr the arena did not return, or one
// that was already relocated, is undefined. Freeing a block twice is a no-op.
//
// # Usage Example
//
//	a, err := arena.New(nil)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	p, err := a.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(a.Bytes(p), "hello")
//
//	p, err = a.Realloc(p, 4096)
//	if err != nil {
//	    return err // original block is untouched
//	}
//	a.Free(p)
//
// # Growth
//
// The first allocation requests max(64 KiB, header + size + 16) bytes from the
// region. Later growth appends exactly header + size + 16 bytes as a new block
// after the current tail. The region never shrinks and freed memory is never
// returned to the OS while the arena is open.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Use Locked for a single mutex around
// the whole arena.
//
// # Tracing
//
// Setting HEAPKIT_LOG_ALLOC in the environment writes one line per operation
// to stderr with its arguments and result. Tracing never changes results.
package arena

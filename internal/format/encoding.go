package format

import "encoding/binary"

// Binary encoding utilities for the little-endian header fields.
//
// encoding/binary.LittleEndian is inlined well by the compiler; the helpers
// only exist so call sites read as field accesses at an offset.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off uint64, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off uint64) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

package format

// Alignment utilities for block sizes.

// Align16 returns n aligned up to the next 16-byte boundary.
//
// Example:
//
//	Align16(1)  = 16
//	Align16(16) = 16
//	Align16(17) = 32
//
// The result wraps for n > MaxRequest; use AlignUp when n is caller supplied.
func Align16(n uint64) uint64 {
	return (n + AlignmentMask) & ^uint64(AlignmentMask)
}

// MaxRequest is the largest payload size whose block (header, payload and
// growth slack) still fits in a uint64.
const MaxRequest = ^uint64(0) - HeaderSize - 2*Alignment

// AlignUp rounds n up to Alignment. ok is false when the rounded size, its
// header and the growth slack cannot be represented.
func AlignUp(n uint64) (aligned uint64, ok bool) {
	if n > MaxRequest {
		return 0, false
	}
	return Align16(n), true
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n uint64) bool {
	return n&AlignmentMask == 0
}

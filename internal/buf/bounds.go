// Package buf contains overflow-checked arithmetic for offsets and sizes.
package buf

import "math/bits"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow uint64.
func AddOverflowSafe(a, b uint64) (uint64, bool) {
	sum, carry := bits.Add64(a, b, 0)
	return sum, carry == 0
}

// MulOverflowSafe multiplies a and b, returning ok = false when the result would overflow uint64.
// This is what guards count * elementSize in Calloc.
func MulOverflowSafe(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b). The
// result's capacity is clipped so appends cannot spill into the next block.
func Slice(b []byte, off, n uint64) ([]byte, bool) {
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > uint64(len(b)) {
		return nil, false
	}
	return b[off:end:end], true
}

// Has reports whether b[off:off+n] is within bounds.
func Has(b []byte, off, n uint64) bool {
	end, ok := AddOverflowSafe(off, n)
	return ok && end <= uint64(len(b))
}

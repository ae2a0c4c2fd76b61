package region

import "fmt"

// Fixed is a region backed by a single Go slice allocated up front. Its
// capacity is the hard limit for Extend.
type Fixed struct {
	buf []byte
	brk uint64
}

// NewFixed returns a region that can grow to limit bytes.
func NewFixed(limit uint64) *Fixed {
	return &Fixed{buf: make([]byte, limit)}
}

// Extend moves the break forward by n bytes and returns the previous break.
func (f *Fixed) Extend(n uint64) (uint64, error) {
	if f.buf == nil {
		return 0, ErrClosed
	}
	limit := uint64(len(f.buf))
	if n > limit-f.brk {
		return 0, fmt.Errorf("extend %d bytes at %d (limit %d): %w", n, f.brk, limit, ErrExhausted)
	}
	old := f.brk
	f.brk += n
	return old, nil
}

// Bytes returns the region up to the current break.
func (f *Fixed) Bytes() []byte { return f.buf[:f.brk:f.brk] }

// Len returns the current break.
func (f *Fixed) Len() uint64 { return f.brk }

// Close drops the backing slice. Later calls to Extend fail with ErrClosed.
func (f *Fixed) Close() error {
	f.buf = nil
	f.brk = 0
	return nil
}

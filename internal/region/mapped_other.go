//go:build !linux && !darwin

package region

// Mapped falls back to a Fixed region where anonymous reservations are not
// wired up. The whole reservation is allocated from the Go heap.
type Mapped struct {
	Fixed
}

// NewMapped returns a Fixed-backed region of reserve bytes.
func NewMapped(reserve uint64) (*Mapped, error) {
	if reserve == 0 {
		return nil, ErrExhausted
	}
	return &Mapped{Fixed: *NewFixed(reserve)}, nil
}

// Committed returns the current break; the fallback has no separate commit step.
func (m *Mapped) Committed() uint64 { return m.Len() }

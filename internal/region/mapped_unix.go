//go:build linux || darwin

package region

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Mapped is a region carved from one anonymous mapping reserved with
// PROT_NONE. Extend commits whole pages read-write as the break crosses them,
// so the OS only backs what has been handed out.
type Mapped struct {
	mem       []byte
	brk       uint64
	committed uint64
	pageSize  uint64
}

// NewMapped reserves reserve bytes (rounded up to the page size) of address
// space. Nothing is committed until the first Extend.
func NewMapped(reserve uint64) (*Mapped, error) {
	pageSize := uint64(unix.Getpagesize())
	if reserve == 0 {
		return nil, fmt.Errorf("region: zero reservation: %w", ErrExhausted)
	}
	if reserve > uint64(^uint(0)>>1)-pageSize {
		return nil, fmt.Errorf("region: reservation too large (%d bytes)", reserve)
	}
	reserve = alignPage(reserve, pageSize)
	mem, err := unix.Mmap(-1, 0, int(reserve), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("region: reserve %d bytes: %w", reserve, err)
	}
	return &Mapped{mem: mem, pageSize: pageSize}, nil
}

// Extend moves the break forward by n bytes and returns the previous break.
// Pages are zero-filled by the OS when first committed.
func (m *Mapped) Extend(n uint64) (uint64, error) {
	if m.mem == nil {
		return 0, ErrClosed
	}
	limit := uint64(len(m.mem))
	if n > limit-m.brk {
		return 0, fmt.Errorf("extend %d bytes at %d (reserved %d): %w", n, m.brk, limit, ErrExhausted)
	}
	end := m.brk + n
	if end > m.committed {
		commit := min(alignPage(end, m.pageSize), limit)
		if err := unix.Mprotect(m.mem[m.committed:commit], unix.PROT_READ|unix.PROT_WRITE); err != nil {
			return 0, fmt.Errorf("commit %d bytes: %w: %w", commit-m.committed, ErrExhausted, err)
		}
		m.committed = commit
	}
	old := m.brk
	m.brk = end
	return old, nil
}

// Bytes returns the region up to the current break.
func (m *Mapped) Bytes() []byte { return m.mem[:m.brk:m.brk] }

// Len returns the current break.
func (m *Mapped) Len() uint64 { return m.brk }

// Committed returns the number of bytes currently backed read-write.
func (m *Mapped) Committed() uint64 { return m.committed }

// Close unmaps the reservation. Any slice obtained from Bytes is invalid
// afterwards.
func (m *Mapped) Close() error {
	if m.mem == nil {
		return nil
	}
	err := unix.Munmap(m.mem)
	m.mem = nil
	m.brk = 0
	m.committed = 0
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

func alignPage(n, pageSize uint64) uint64 {
	return (n + pageSize - 1) &^ (pageSize - 1)
}

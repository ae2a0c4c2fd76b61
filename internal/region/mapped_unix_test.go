//go:build linux || darwin

package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestMappedExtendCommitsPages(t *testing.T) {
	m, err := NewMapped(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, m.Close()) })

	off, err := m.Extend(100)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), off)
	assert.Equal(t, uint64(100), m.Len())
	assert.Equal(t, uint64(unix.Getpagesize()), m.Committed())

	b := m.Bytes()
	require.Len(t, b, 100)
	for i := range b {
		require.Zero(t, b[i], "fresh pages must be zero")
		b[i] = byte(i)
	}

	off, err = m.Extend(uint64(unix.Getpagesize()))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), off)
	assert.Equal(t, byte(99), m.Bytes()[99], "earlier bytes survive growth")
	assert.Equal(t, 2*uint64(unix.Getpagesize()), m.Committed())
}

func TestMappedAddressesDoNotMove(t *testing.T) {
	m, err := NewMapped(1 << 22)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, m.Close()) })

	_, err = m.Extend(64)
	require.NoError(t, err)
	first := &m.Bytes()[0]

	_, err = m.Extend(1 << 21)
	require.NoError(t, err)
	assert.Same(t, first, &m.Bytes()[0])
}

func TestMappedExhausted(t *testing.T) {
	m, err := NewMapped(uint64(unix.Getpagesize()))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, m.Close()) })

	_, err = m.Extend(uint64(unix.Getpagesize()) + 1)
	require.ErrorIs(t, err, ErrExhausted)
	assert.Zero(t, m.Len(), "failed extend must not move the break")

	_, err = m.Extend(uint64(unix.Getpagesize()))
	require.NoError(t, err)
	_, err = m.Extend(1)
	require.ErrorIs(t, err, ErrExhausted)
}

func TestMappedClose(t *testing.T) {
	m, err := NewMapped(1 << 16)
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close(), "double close is a no-op")

	_, err = m.Extend(16)
	require.ErrorIs(t, err, ErrClosed)
}

func TestMappedZeroReservation(t *testing.T) {
	_, err := NewMapped(0)
	require.ErrorIs(t, err, ErrExhausted)
}

package arena

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/region"
)

// ============================================================================
// Arena Creation Utilities
// ============================================================================

// newTestArena returns an arena over a Fixed region of limit bytes, so tests
// control exactly when the source runs dry.
func newTestArena(t testing.TB, limit uint64) *Arena {
	t.Helper()
	a, err := New(&Config{Source: region.NewFixed(limit)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

// ============================================================================
// Inspection Utilities
// ============================================================================

// chain collects the blocks of a in address order.
func chain(a *Arena) []Block {
	return slices.Collect(a.Blocks())
}

// blk is a compact expected-block literal: header offset, payload size, free.
type blk struct {
	off  uint64
	size uint64
	free bool
}

// assertChain checks the exact chain layout.
func assertChain(t testing.TB, a *Arena, want ...blk) {
	t.Helper()
	got := chain(a)
	require.Len(t, got, len(want), "block count")
	for i, w := range want {
		require.Equal(t, w.off, got[i].Offset, "block %d offset", i)
		require.Equal(t, w.size, got[i].Size, "block %d size", i)
		require.Equal(t, w.free, got[i].Free, "block %d free flag", i)
	}
}

// assertInvariants checks the structural invariants of the chain.
func assertInvariants(t testing.TB, a *Arena) {
	t.Helper()
	require.NoError(t, a.Verify())
}

// ============================================================================
// Payload Utilities
// ============================================================================

// fill writes a pattern derived from seed.
func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i*7)
	}
}

// requireFilled checks a pattern written by fill.
func requireFilled(t testing.TB, b []byte, seed byte) {
	t.Helper()
	for i := range b {
		if b[i] != seed+byte(i*7) {
			require.Failf(t, "payload corrupted", "byte %d: got %#x want %#x", i, b[i], seed+byte(i*7))
		}
	}
}

// hdr is shorthand for the header offset behind a handle.
func hdr(p Ptr) uint64 { return uint64(p) - format.HeaderSize }

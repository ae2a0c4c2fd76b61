package arena

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/region"
)

func TestAllocZeroSize(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p, err := a.Alloc(0)
	require.NoError(t, err)
	assert.Equal(t, Nil, p)
	assert.Zero(t, a.Len(), "zero-size request must not create the arena")
	assert.Empty(t, chain(a))
}

func TestAllocFirstRequestLayout(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p, err := a.Alloc(100)
	require.NoError(t, err)
	assert.Equal(t, Ptr(format.HeaderSize), p)
	assert.Equal(t, uint64(format.MinChunkSize), a.Len())
	assert.Equal(t, uint64(112), a.UsableSize(p), "100 rounds up to 112")

	assertChain(t, a,
		blk{0, 112, false},
		blk{144, 65360, true},
	)
	assertInvariants(t, a)
}

func TestAllocFirstFitReusesFreedBlock(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p1, err := a.Alloc(100)
	require.NoError(t, err)
	p2, err := a.Alloc(200)
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)

	a.Free(p1)

	p3, err := a.Alloc(50)
	require.NoError(t, err)
	assert.Equal(t, p1, p3, "first fit must land in the freed block")

	// 112-byte block split into 64 used + header + 16 free.
	assertChain(t, a,
		blk{0, 64, false},
		blk{96, 16, true},
		blk{144, 208, false},
		blk{384, 65120, true},
	)
	assertInvariants(t, a)
}

func TestAllocSmallRemainderNotSplit(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p1, err := a.Alloc(112)
	require.NoError(t, err)
	_, err = a.Alloc(16)
	require.NoError(t, err)
	a.Free(p1)

	splits := a.Stats().SplitCount
	p3, err := a.Alloc(80)
	require.NoError(t, err)
	assert.Equal(t, p1, p3)
	assert.Equal(t, uint64(112), a.UsableSize(p3), "32-byte remainder stays with the block")
	assert.Equal(t, splits, a.Stats().SplitCount)
	assertInvariants(t, a)
}

func TestAllocExactSplitThreshold(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p1, err := a.Alloc(128)
	require.NoError(t, err)
	_, err = a.Alloc(16)
	require.NoError(t, err)
	a.Free(p1)

	// 128 = 80 + header + 16: just enough for a minimal free block.
	p3, err := a.Alloc(80)
	require.NoError(t, err)
	assert.Equal(t, uint64(80), a.UsableSize(p3))
	blocks := chain(a)
	require.True(t, blocks[1].Free)
	assert.Equal(t, uint64(format.Alignment), blocks[1].Size)
	assertInvariants(t, a)
}

func TestAllocLargeFirstRequest(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p, err := a.Alloc(100000)
	require.NoError(t, err)
	assert.Equal(t, uint64(format.HeaderSize+100000+format.Alignment), a.Len())
	assert.Equal(t, uint64(100016), a.UsableSize(p), "slack below the split threshold stays with the block")
	assertChain(t, a, blk{0, 100016, false})
	assertInvariants(t, a)
}

func TestAllocExtendsRegion(t *testing.T) {
	a := newTestArena(t, 1<<20)

	p1, err := a.Alloc(60000)
	require.NoError(t, err)
	p2, err := a.Alloc(60000)
	require.NoError(t, err)

	assert.Equal(t, Ptr(format.MinChunkSize+format.HeaderSize), p2, "new block is appended after the old tail")
	assert.Equal(t, uint64(format.MinChunkSize+format.HeaderSize+60000+format.Alignment), a.Len())

	s := a.Stats()
	assert.Equal(t, 2, s.GrowCalls)
	assert.Equal(t, 1, s.AllocSlowPath)
	assert.Equal(t, 1, s.AllocFastPath)

	assertChain(t, a,
		blk{0, 60000, false},
		blk{60032, 5472, true},
		blk{65536, 60016, false},
	)
	assertInvariants(t, a)

	fill(a.Bytes(p1), 1)
	fill(a.Bytes(p2), 2)
	requireFilled(t, a.Bytes(p1), 1)
	requireFilled(t, a.Bytes(p2), 2)
}

func TestAllocInitialFailureLeavesArenaEmpty(t *testing.T) {
	a := newTestArena(t, 1000)

	p, err := a.Alloc(10)
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.ErrorIs(t, err, region.ErrExhausted)
	assert.Equal(t, Nil, p)
	assert.Zero(t, a.Len())
	assert.Empty(t, chain(a))
	assertInvariants(t, a)
}

func TestAllocExtendFailureKeepsState(t *testing.T) {
	a := newTestArena(t, format.MinChunkSize)

	p, err := a.Alloc(65000)
	require.NoError(t, err)
	before := chain(a)

	q, err := a.Alloc(1000)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, Nil, q)
	assert.Equal(t, before, chain(a))
	assert.Equal(t, uint64(format.MinChunkSize), a.Len())
	assertInvariants(t, a)

	// The arena keeps working after a failure.
	a.Free(p)
	q, err = a.Alloc(1000)
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestAllocUnrepresentableSize(t *testing.T) {
	a := newTestArena(t, 1<<20)

	for _, size := range []uint64{math.MaxUint64, math.MaxUint64 - 15, format.MaxRequest + 1} {
		p, err := a.Alloc(size)
		require.ErrorIs(t, err, ErrOutOfMemory, "size %d", size)
		assert.Equal(t, Nil, p)
	}
	assert.Zero(t, a.Len())
}

func TestAllocReclaimsFreedSpace(t *testing.T) {
	for _, size := range []uint64{1, 15, 16, 17, 100, 4096, 70000} {
		a := newTestArena(t, 1<<21)

		p, err := a.Alloc(size)
		require.NoError(t, err)
		require.NotEqual(t, Nil, p)
		a.Free(p)

		q, err := a.Alloc(size)
		require.NoError(t, err, "size %d", size)
		assert.Equal(t, p, q, "size %d", size)
		assert.Equal(t, 1, a.Stats().GrowCalls, "size %d: no new memory needed", size)
		assertInvariants(t, a)
	}
}

func TestAllocPayloadRoundTrip(t *testing.T) {
	a := newTestArena(t, 1<<21)

	sizes := []uint64{1, 16, 33, 100, 512, 4000, 70000}
	ptrs := make([]Ptr, len(sizes))
	for i, size := range sizes {
		p, err := a.Alloc(size)
		require.NoError(t, err)
		require.GreaterOrEqual(t, a.UsableSize(p), size)
		require.Zero(t, uint64(p)%format.Alignment, "payload must be 16-byte aligned")
		fill(a.Bytes(p), byte(i))
		ptrs[i] = p
	}
	for i, p := range ptrs {
		requireFilled(t, a.Bytes(p), byte(i))
	}
	assertInvariants(t, a)
}

func TestAllocCustomMinChunk(t *testing.T) {
	a, err := New(&Config{Source: region.NewFixed(1 << 16), MinChunk: 1000})
	require.NoError(t, err)

	_, err = a.Alloc(16)
	require.NoError(t, err)
	assert.Equal(t, uint64(1008), a.Len(), "min chunk is rounded up to the alignment unit")
	assertInvariants(t, a)
}

func TestBytesNil(t *testing.T) {
	a := newTestArena(t, 1<<16)
	assert.Nil(t, a.Bytes(Nil))
	assert.Zero(t, a.UsableSize(Nil))
	assert.Equal(t, "nil", Nil.String())
	assert.Equal(t, "0x20", Ptr(32).String())
}

func TestNewDefaultSource(t *testing.T) {
	a, err := New(&Config{Reserve: 1 << 22})
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	p, err := a.Alloc(1 << 20)
	require.NoError(t, err)
	b := a.Bytes(p)
	fill(b, 9)
	requireFilled(t, b, 9)

	_, err = a.Alloc(1 << 23)
	require.ErrorIs(t, err, ErrOutOfMemory)
	assertInvariants(t, a)
}

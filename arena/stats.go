package arena

import (
	"fmt"
	"io"
)

// Stats holds operation counters. They only ever increase.
type Stats struct {
	AllocCalls   int // Alloc calls
	FreeCalls    int // Free calls
	CallocCalls  int // Calloc calls
	ReallocCalls int // Realloc calls

	AllocFastPath int // Allocations served from an existing free block
	AllocSlowPath int // Allocations that appended a new block

	GrowCalls int    // Successful requests to the source
	GrowBytes uint64 // Bytes obtained from the source

	SplitCount       int // Blocks split in two
	CoalesceForward  int // Right neighbours absorbed
	CoalesceBackward int // Blocks absorbed into a free left neighbour
	InPlaceGrows     int // Realloc calls that grew without moving
	Relocations      int // Realloc calls that moved the payload
	DoubleFrees      int // Frees of an already free block

	BytesFreed uint64 // Payload bytes returned by Free and Realloc
}

// Usage is a snapshot of the chain at one point in time.
type Usage struct {
	Blocks      int    // Blocks in the chain
	FreeBlocks  int    // Blocks marked free
	UsedBytes   uint64 // Payload bytes in allocated blocks
	FreeBytes   uint64 // Payload bytes in free blocks
	LargestFree uint64 // Largest free payload
	Overhead    uint64 // Header bytes
	Region      uint64 // Bytes obtained from the source
}

// Fragmentation returns 1 - LargestFree/FreeBytes: 0 when all free memory is
// one block, approaching 1 as it scatters. Returns 0 with no free memory.
func (u Usage) Fragmentation() float64 {
	if u.FreeBytes == 0 {
		return 0
	}
	return 1 - float64(u.LargestFree)/float64(u.FreeBytes)
}

// Stats returns the operation counters.
func (a *Arena) Stats() Stats { return a.stats }

// Usage walks the chain and summarises it.
func (a *Arena) Usage() Usage {
	u := Usage{Region: a.src.Len()}
	for b := range a.Blocks() {
		u.Blocks++
		u.Overhead += HeaderSize
		if b.Free {
			u.FreeBlocks++
			u.FreeBytes += b.Size
			u.LargestFree = max(u.LargestFree, b.Size)
		} else {
			u.UsedBytes += b.Size
		}
	}
	return u
}

// PrintStats writes counters and a usage snapshot to w.
func (a *Arena) PrintStats(w io.Writer) {
	s := a.stats
	u := a.Usage()
	fmt.Fprintf(w, "\n=== ARENA STATISTICS ===\n")
	fmt.Fprintf(w, "Grow calls:         %d (%d bytes)\n", s.GrowCalls, s.GrowBytes)
	fmt.Fprintf(
		w,
		"Alloc calls:        %d (fast: %d, slow: %d)\n",
		s.AllocCalls,
		s.AllocFastPath,
		s.AllocSlowPath,
	)
	fmt.Fprintf(w, "Calloc calls:       %d\n", s.CallocCalls)
	fmt.Fprintf(w, "Realloc calls:      %d (in place: %d, moved: %d)\n",
		s.ReallocCalls, s.InPlaceGrows, s.Relocations)
	fmt.Fprintf(w, "Free calls:         %d (double: %d)\n", s.FreeCalls, s.DoubleFrees)
	fmt.Fprintf(w, "Block splits:       %d\n", s.SplitCount)
	fmt.Fprintf(w, "Coalesce fwd:       %d\n", s.CoalesceForward)
	fmt.Fprintf(w, "Coalesce back:      %d\n", s.CoalesceBackward)

	fmt.Fprintf(w, "\nChain:\n")
	fmt.Fprintf(w, "  Blocks:           %d (%d free)\n", u.Blocks, u.FreeBlocks)
	fmt.Fprintf(w, "  Used bytes:       %d\n", u.UsedBytes)
	fmt.Fprintf(w, "  Free bytes:       %d (largest %d)\n", u.FreeBytes, u.LargestFree)
	fmt.Fprintf(w, "  Header bytes:     %d\n", u.Overhead)
	fmt.Fprintf(w, "  Fragmentation:    %.1f%%\n", 100*u.Fragmentation())
	fmt.Fprintf(w, "========================\n\n")
}

// Package region supplies raw memory to the heap arena.
//
// Both implementations behave like a program break: Extend appends bytes to
// the end of the region and returns the offset of the first new byte. Bytes
// that were handed out never move, so offsets and slices into the region stay
// valid for the region's lifetime. Regions only grow.
//
//   - Mapped reserves a large anonymous mapping once and commits pages with
//     mprotect as the break advances (linux and darwin).
//   - Fixed is a Go byte slice with a fixed capacity. It is the fallback on
//     other platforms and lets tests pick an exact exhaustion point.
//
// Regions are not safe for concurrent use.
package region

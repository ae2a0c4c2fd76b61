/*
Package malloc is the process-wide heap: one lazily created, lock-guarded
arena shared by every caller, with the classic four entry points.

# Quick Start

	p := malloc.Malloc(100)
	if p == arena.Nil {
	    return malloc.LastError()
	}
	copy(malloc.Bytes(p), "hello")

	p = malloc.Realloc(p, 4096) // first 100 bytes preserved
	malloc.Free(p)

# Error Handling

Failures return arena.Nil and record the cause, which LastError returns until
the next failure or ClearError. Successful calls leave it alone, so check the
returned handle first. A zero-size request returns arena.Nil without
recording anything.

# Configuration

The arena reserves HEAPKIT_RESERVE bytes of address space (default 1 GiB)
the first time any entry point needs it. Setting HEAPKIT_LOG_ALLOC traces every
call to stderr.

# Limitations

Handles are not validated: freeing a foreign or relocated handle is undefined.
Memory is never returned to the OS.
*/
package malloc

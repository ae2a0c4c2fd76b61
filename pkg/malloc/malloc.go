package malloc

import (
	"os"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/heapkit/arena"
)

// EnvReserve names the environment variable holding the reservation size in bytes.
const EnvReserve = "HEAPKIT_RESERVE"

var (
	heap = sync.OnceValues(func() (*arena.Locked, error) {
		return arena.NewLocked(&arena.Config{Reserve: reserveFromEnv()})
	})

	lastErr atomic.Pointer[error]
)

func reserveFromEnv() uint64 {
	v := os.Getenv(EnvReserve)
	if v == "" {
		return arena.DefaultReserve
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil || n == 0 {
		return arena.DefaultReserve
	}
	return n
}

func setErr(err error) {
	lastErr.Store(&err)
}

// LastError returns the cause of the most recent failed call, or nil.
func LastError() error {
	if e := lastErr.Load(); e != nil {
		return *e
	}
	return nil
}

// ClearError resets LastError to nil.
func ClearError() {
	lastErr.Store(nil)
}

// Malloc returns a handle to at least size bytes, or arena.Nil.
func Malloc(size uint64) arena.Ptr {
	if size == 0 {
		return arena.Nil
	}
	h, err := heap()
	if err != nil {
		setErr(err)
		return arena.Nil
	}
	p, err := h.Alloc(size)
	if err != nil {
		setErr(err)
	}
	return p
}

// Free releases p. Free(arena.Nil) is a no-op.
func Free(p arena.Ptr) {
	if p == arena.Nil {
		return
	}
	h, err := heap()
	if err != nil {
		return
	}
	h.Free(p)
}

// Calloc returns a handle to count*size zeroed bytes, or arena.Nil.
func Calloc(count, size uint64) arena.Ptr {
	if count == 0 || size == 0 {
		return arena.Nil
	}
	h, err := heap()
	if err != nil {
		setErr(err)
		return arena.Nil
	}
	p, err := h.Calloc(count, size)
	if err != nil {
		setErr(err)
	}
	return p
}

// Realloc resizes p to size bytes. See arena.Arena.Realloc. On failure p is
// still valid and arena.Nil is returned.
func Realloc(p arena.Ptr, size uint64) arena.Ptr {
	h, err := heap()
	if err != nil {
		setErr(err)
		return arena.Nil
	}
	np, err := h.Realloc(p, size)
	if err != nil {
		setErr(err)
	}
	return np
}

// Bytes returns the payload of p.
func Bytes(p arena.Ptr) []byte {
	if p == arena.Nil {
		return nil
	}
	h, err := heap()
	if err != nil {
		return nil
	}
	return h.Bytes(p)
}

// UsableSize returns the payload size behind p.
func UsableSize(p arena.Ptr) uint64 {
	if p == arena.Nil {
		return 0
	}
	h, err := heap()
	if err != nil {
		return 0
	}
	return h.UsableSize(p)
}

// Stats returns the process heap's operation counters.
func Stats() arena.Stats {
	h, err := heap()
	if err != nil {
		return arena.Stats{}
	}
	return h.Stats()
}

// Usage summarises the process heap's block chain.
func Usage() arena.Usage {
	h, err := heap()
	if err != nil {
		return arena.Usage{}
	}
	return h.Usage()
}

// Verify checks the process heap's block chain.
func Verify() error {
	h, err := heap()
	if err != nil {
		return err
	}
	return h.Verify()
}

package arena

import (
	"io"
	"sync"
)

// Locked is a mutex-protected wrapper around Arena. Every operation holds one
// lock for its whole duration. Slices returned by Bytes are not protected:
// they remain a loan that ends when the block is freed or relocated.
type Locked struct {
	mu sync.Mutex
	a  *Arena
}

// NewLocked creates an arena with config and wraps it.
func NewLocked(config *Config) (*Locked, error) {
	a, err := New(config)
	if err != nil {
		return nil, err
	}
	return &Locked{a: a}, nil
}

// Alloc thread-safely calls Arena.Alloc.
func (l *Locked) Alloc(size uint64) (Ptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Alloc(size)
}

// Free thread-safely calls Arena.Free.
func (l *Locked) Free(p Ptr) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.Free(p)
}

// Calloc thread-safely calls Arena.Calloc.
func (l *Locked) Calloc(count, size uint64) (Ptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Calloc(count, size)
}

// Realloc thread-safely calls Arena.Realloc.
func (l *Locked) Realloc(p Ptr, size uint64) (Ptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Realloc(p, size)
}

// Bytes thread-safely calls Arena.Bytes.
func (l *Locked) Bytes(p Ptr) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Bytes(p)
}

// UsableSize thread-safely calls Arena.UsableSize.
func (l *Locked) UsableSize(p Ptr) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.UsableSize(p)
}

// Stats thread-safely returns the operation counters.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Stats()
}

// Usage thread-safely summarises the chain.
func (l *Locked) Usage() Usage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Usage()
}

// Verify thread-safely checks the chain.
func (l *Locked) Verify() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Verify()
}

// PrintStats thread-safely writes statistics to w.
func (l *Locked) PrintStats(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.a.PrintStats(w)
}

// Close thread-safely closes the arena.
func (l *Locked) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.a.Close()
}

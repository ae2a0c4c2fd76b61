package trace

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/joshuapare/heapkit/arena"
	"github.com/joshuapare/heapkit/internal/buf"
)

// Heap is the allocator surface a script drives. Both *arena.Arena and
// *arena.Locked satisfy it.
type Heap interface {
	Alloc(size uint64) (arena.Ptr, error)
	Free(p arena.Ptr)
	Calloc(count, size uint64) (arena.Ptr, error)
	Realloc(p arena.Ptr, size uint64) (arena.Ptr, error)
	Bytes(p arena.Ptr) []byte
	Verify() error
	Stats() arena.Stats
	Usage() arena.Usage
}

// binding is a named handle and the bytes the script asked for.
type binding struct {
	p    arena.Ptr
	size uint64
	seed byte
}

type runner struct {
	h      Heap
	names  map[string]binding
	report *Report
}

// Run replays ops against h and returns a report. Out-of-memory results are
// counted, not returned. Any other problem stops the replay; the partial
// report is returned along with the error.
func Run(h Heap, ops []Op) (*Report, error) {
	r := &runner{
		h:      h,
		names:  make(map[string]binding),
		report: newReport(),
	}
	var err error
	for _, op := range ops {
		if err = r.step(op); err != nil {
			err = fmt.Errorf("line %d: %s: %w", op.Line, op, err)
			break
		}
	}
	r.finish()
	return r.report, err
}

func (r *runner) step(op Op) error {
	r.report.Ops++
	r.report.ByKind[op.Kind.String()]++

	switch op.Kind {
	case KindAlloc:
		if err := r.checkFree(op.Dst); err != nil {
			return err
		}
		p, err := r.h.Alloc(op.Size)
		if r.failed(err) {
			return nil
		}
		r.bind(op.Dst, binding{p: p, size: op.Size, seed: seedFor(op.Line)})

	case KindCalloc:
		if err := r.checkFree(op.Dst); err != nil {
			return err
		}
		p, err := r.h.Calloc(op.Count, op.Size)
		if r.failed(err) {
			return nil
		}
		n, _ := buf.MulOverflowSafe(op.Count, op.Size)
		if p != arena.Nil {
			if i := firstNonZero(r.h.Bytes(p)[:n]); i >= 0 {
				return fmt.Errorf("%w: byte %d of calloc block is not zero", ErrMismatch, i)
			}
		}
		r.bind(op.Dst, binding{p: p, size: n, seed: seedFor(op.Line)})

	case KindRealloc:
		old, err := r.lookup(op.Src)
		if err != nil {
			return err
		}
		if op.Dst != op.Src {
			if err := r.checkFree(op.Dst); err != nil {
				return err
			}
		}
		if op.Src == nilName {
			old.seed = seedFor(op.Line)
		}
		np, err := r.h.Realloc(old.p, op.Size)
		if r.failed(err) {
			return nil
		}
		if np != arena.Nil {
			if err := checkPattern(r.h.Bytes(np)[:min(old.size, op.Size)], old.seed); err != nil {
				return err
			}
		}
		r.unbind(op.Src)
		r.bind(op.Dst, binding{p: np, size: op.Size, seed: old.seed})

	case KindFree:
		b, err := r.lookup(op.Src)
		if err != nil {
			return err
		}
		if err := r.checkPayload(b); err != nil {
			return err
		}
		r.h.Free(b.p)
		r.unbind(op.Src)

	case KindCheck:
		r.report.Checks++
		return r.check()

	default:
		return fmt.Errorf("%w: unknown operation %v", ErrSyntax, op.Kind)
	}
	return nil
}

// failed counts out-of-memory results. Any other error is unexpected from
// the arena and is counted the same way.
func (r *runner) failed(err error) bool {
	if err == nil {
		return false
	}
	r.report.Failed++
	if !errors.Is(err, arena.ErrOutOfMemory) {
		r.report.OtherErrors++
	}
	return true
}

func (r *runner) lookup(name string) (binding, error) {
	if name == nilName {
		return binding{}, nil
	}
	b, ok := r.names[name]
	if !ok {
		return binding{}, fmt.Errorf("%w: %q", ErrUnknownHandle, name)
	}
	return b, nil
}

// checkFree rejects rebinding a name that still owns a block; the block would
// leak for the rest of the replay.
func (r *runner) checkFree(name string) error {
	if b, ok := r.names[name]; ok && b.p != arena.Nil {
		return fmt.Errorf("%w: %q", ErrHandleLive, name)
	}
	return nil
}

func (r *runner) bind(name string, b binding) {
	if b.p != arena.Nil {
		fill(r.h.Bytes(b.p)[:b.size], b.seed)
	}
	r.names[name] = b
	r.report.LiveBytes += b.size
	r.report.PeakLiveBytes = max(r.report.PeakLiveBytes, r.report.LiveBytes)
}

func (r *runner) unbind(name string) {
	if b, ok := r.names[name]; ok {
		r.report.LiveBytes -= b.size
		delete(r.names, name)
	}
}

func (r *runner) checkPayload(b binding) error {
	if b.p == arena.Nil {
		return nil
	}
	return checkPattern(r.h.Bytes(b.p)[:b.size], b.seed)
}

// check verifies the chain and then every live payload in name order.
func (r *runner) check() error {
	if err := r.h.Verify(); err != nil {
		return fmt.Errorf("%w: %w", ErrMismatch, err)
	}
	for _, name := range slices.Sorted(maps.Keys(r.names)) {
		if err := r.checkPayload(r.names[name]); err != nil {
			return fmt.Errorf("handle %q: %w", name, err)
		}
	}
	return nil
}

func (r *runner) finish() {
	for _, b := range r.names {
		if b.p != arena.Nil {
			r.report.Live++
		}
	}
	r.report.Stats = r.h.Stats()
	r.report.Usage = r.h.Usage()
}

func seedFor(line int) byte { return byte(line*31 + 1) }

func fill(b []byte, seed byte) {
	for i := range b {
		b[i] = seed + byte(i*7)
	}
}

func checkPattern(b []byte, seed byte) error {
	for i := range b {
		if want := seed + byte(i*7); b[i] != want {
			return fmt.Errorf("%w: payload byte %d is %#x, want %#x", ErrMismatch, i, b[i], want)
		}
	}
	return nil
}

func firstNonZero(b []byte) int {
	for i, c := range b {
		if c != 0 {
			return i
		}
	}
	return -1
}

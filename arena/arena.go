package arena

import (
	"fmt"
	"log/slog"

	"github.com/joshuapare/heapkit/internal/format"
	"github.com/joshuapare/heapkit/internal/logger"
	"github.com/joshuapare/heapkit/internal/region"
)

// DefaultReserve is the address space reserved by New when no Source is given.
const DefaultReserve = 1 << 30

// Config tunes an arena. Zero fields fall back to DefaultConfig.
type Config struct {
	// MinChunk is the size of the first request made to the source. It is
	// rounded up to Alignment and never smaller than HeaderSize+Alignment.
	MinChunk uint64

	// Reserve is the address space reserved for the default source. Ignored
	// when Source is set.
	Reserve uint64

	// Source supplies memory. When nil, New reserves Reserve bytes with
	// region.NewMapped and Close releases them.
	Source Source

	// Logger receives one record per operation. When nil, the process-wide
	// trace logger is used, which is silent unless HEAPKIT_LOG_ALLOC is set.
	Logger *slog.Logger
}

// DefaultConfig is used when New is called with nil.
var DefaultConfig = Config{
	MinChunk: format.MinChunkSize,
	Reserve:  DefaultReserve,
}

// Arena is a first-fit allocator over one growable region.
type Arena struct {
	src      Source
	ownsSrc  bool
	minChunk uint64

	// head is the header offset of the first block, NoBlock until the first
	// successful allocation creates the chain.
	head uint64

	log   *slog.Logger
	stats Stats
}

// New creates an arena. The chain itself is created lazily by the first
// non-zero allocation.
func New(config *Config) (*Arena, error) {
	if config == nil {
		config = &DefaultConfig
	}
	cfg := *config

	if cfg.MinChunk == 0 {
		cfg.MinChunk = DefaultConfig.MinChunk
	}
	cfg.MinChunk = max(format.Align16(cfg.MinChunk), format.SplitThreshold)
	if cfg.Reserve == 0 {
		cfg.Reserve = DefaultConfig.Reserve
	}

	a := &Arena{
		src:      cfg.Source,
		minChunk: cfg.MinChunk,
		head:     format.NoBlock,
		log:      cfg.Logger,
	}
	if a.src == nil {
		m, err := region.NewMapped(cfg.Reserve)
		if err != nil {
			return nil, fmt.Errorf("arena: %w: %w", ErrOutOfMemory, err)
		}
		a.src = m
		a.ownsSrc = true
	}
	if a.log == nil {
		a.log = logger.Alloc()
	}
	return a, nil
}

// Close releases a source created by New. A caller-supplied Source is left
// open. Every handle and slice from this arena is invalid afterwards.
func (a *Arena) Close() error {
	a.head = format.NoBlock
	if !a.ownsSrc {
		return nil
	}
	return a.src.Close()
}

// Bytes returns the payload of p, Nil yields nil. The slice length is the
// usable size of the block, which may exceed the requested size.
func (a *Arena) Bytes(p Ptr) []byte {
	if p == Nil {
		return nil
	}
	size := a.header(p.header()).Size
	data := a.src.Bytes()
	return data[uint64(p) : uint64(p)+size : uint64(p)+size]
}

// UsableSize returns the payload size of the block behind p, 0 for Nil.
func (a *Arena) UsableSize(p Ptr) uint64 {
	if p == Nil {
		return 0
	}
	return a.header(p.header()).Size
}

// Len returns the number of bytes obtained from the source so far.
func (a *Arena) Len() uint64 { return a.src.Len() }

func (a *Arena) initialized() bool { return a.head != format.NoBlock }

func (a *Arena) header(off uint64) format.Header {
	return format.ReadHeader(a.src.Bytes(), off)
}

func (a *Arena) setHeader(off uint64, h format.Header) {
	format.WriteHeader(a.src.Bytes(), off, h)
}

// setPrev repoints the back-reference of the block at off.
func (a *Arena) setPrev(off, prev uint64) {
	format.PutU64(a.src.Bytes(), off+format.PrevOffset, prev)
}

func (a *Arena) trace(op string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.Debug(op, args...)
}

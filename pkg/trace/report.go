package trace

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/arena"
)

// Report summarises a replay.
type Report struct {
	Ops         int            `json:"ops"`
	ByKind      map[string]int `json:"by_kind"`
	Checks      int            `json:"checks"`
	Failed      int            `json:"failed"`       // operations the heap refused
	OtherErrors int            `json:"other_errors"` // refusals not caused by running out of memory

	Live          int    `json:"live"`            // handles still owning a block at the end
	LiveBytes     uint64 `json:"live_bytes"`      // requested bytes still bound at the end
	PeakLiveBytes uint64 `json:"peak_live_bytes"` // high-water mark of LiveBytes

	Stats arena.Stats `json:"stats"`
	Usage arena.Usage `json:"usage"`
}

func newReport() *Report {
	return &Report{ByKind: make(map[string]int)}
}

// Fragmentation is Usage.Fragmentation.
func (r *Report) Fragmentation() float64 { return r.Usage.Fragmentation() }

// WriteText prints the report for humans, with numbers grouped the way tag
// expects (language.English gives 65,536).
func (r *Report) WriteText(w io.Writer, tag language.Tag) error {
	p := message.NewPrinter(tag)
	u := r.Usage
	lines := []struct {
		format string
		args   []any
	}{
		{"Operations:       %d\n", []any{r.Ops}},
		{"  alloc:          %d\n", []any{r.ByKind[KindAlloc.String()]}},
		{"  calloc:         %d\n", []any{r.ByKind[KindCalloc.String()]}},
		{"  realloc:        %d (in place: %d, moved: %d)\n",
			[]any{r.ByKind[KindRealloc.String()], r.Stats.InPlaceGrows, r.Stats.Relocations}},
		{"  free:           %d\n", []any{r.ByKind[KindFree.String()]}},
		{"  check:          %d\n", []any{r.Checks}},
		{"Failed:           %d\n", []any{r.Failed}},
		{"Live handles:     %d (%d bytes, peak %d)\n", []any{r.Live, r.LiveBytes, r.PeakLiveBytes}},
		{"Region:           %d bytes in %d grows\n", []any{u.Region, r.Stats.GrowCalls}},
		{"Blocks:           %d (%d free)\n", []any{u.Blocks, u.FreeBlocks}},
		{"Used bytes:       %d\n", []any{u.UsedBytes}},
		{"Free bytes:       %d (largest %d)\n", []any{u.FreeBytes, u.LargestFree}},
		{"Header bytes:     %d\n", []any{u.Overhead}},
		{"Fragmentation:    %.1f%%\n", []any{100 * u.Fragmentation()}},
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}
	return nil
}

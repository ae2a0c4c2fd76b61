package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the first-fit reuse scenario",
		Long: `The demo command allocates 100 and 200 bytes, frees the first block and
allocates 50 bytes. Under first-fit the last request reuses the first block,
which is split because the leftover is large enough to stand alone.

Example:
  heapctl demo
  heapctl demo --json
  heapctl demo -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

// DemoStep records one operation of the scenario.
type DemoStep struct {
	Op     string    `json:"op"`
	Size   uint64    `json:"size,omitempty"`
	Ptr    arena.Ptr `json:"ptr"`
	Result arena.Ptr `json:"result"`
}

// DemoResult is the JSON form of the demo.
type DemoResult struct {
	Steps  []DemoStep    `json:"steps"`
	Reused bool          `json:"reused"`
	Chain  []arena.Block `json:"chain"`
	Stats  arena.Stats   `json:"stats"`
}

func runDemo() error {
	a, err := newArena()
	if err != nil {
		return err
	}
	defer a.Close()

	var res DemoResult
	alloc := func(n uint64) (arena.Ptr, error) {
		p, err := a.Alloc(n)
		if err != nil {
			return arena.Nil, fmt.Errorf("alloc %d: %w", n, err)
		}
		res.Steps = append(res.Steps, DemoStep{Op: "alloc", Size: n, Result: p})
		printVerbose("alloc(%d) = %s\n", n, p)
		return p, nil
	}

	p1, err := alloc(100)
	if err != nil {
		return err
	}
	p2, err := alloc(200)
	if err != nil {
		return err
	}
	a.Free(p1)
	res.Steps = append(res.Steps, DemoStep{Op: "free", Ptr: p1})
	printVerbose("free(%s)\n", p1)
	p3, err := alloc(50)
	if err != nil {
		return err
	}

	if err := a.Verify(); err != nil {
		return err
	}
	res.Reused = p3 == p1
	res.Chain = slices.Collect(a.Blocks())
	res.Stats = a.Stats()

	if jsonOut {
		return printJSON(res)
	}

	printInfo("P1 = alloc(100) -> %s\n", p1)
	printInfo("P2 = alloc(200) -> %s\n", p2)
	printInfo("free(P1)\n")
	printInfo("P3 = alloc(50)  -> %s", p3)
	if res.Reused {
		printInfo(" (reused P1)\n\n")
	} else {
		printInfo(" (new block)\n\n")
	}
	printChain(a)
	if verbose && !quiet {
		a.PrintStats(os.Stdout)
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/arena"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	reserve  uint64
	minChunk uint64
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect the heapkit first-fit arena",
	Long: `heapctl drives a heapkit arena from the command line. It can run the
reference first-fit scenario and replay allocation traces, printing the
resulting block chain and allocator statistics.

Set HEAPKIT_LOG_ALLOC=1 to trace every arena operation to stderr.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		Uint64Var(&reserve, "reserve", arena.DefaultReserve, "Address space reserved for the arena, in bytes")
	rootCmd.PersistentFlags().
		Uint64Var(&minChunk, "min-chunk", 0, "Size of the first chunk requested from the OS (0 = default)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// newArena builds an arena from the global flags.
func newArena() (*arena.Arena, error) {
	a, err := arena.New(&arena.Config{MinChunk: minChunk, Reserve: reserve})
	if err != nil {
		return nil, fmt.Errorf("failed to create arena: %w", err)
	}
	return a, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printChain lists the blocks of a in address order.
func printChain(a *arena.Arena) {
	printInfo("%-10s %-10s %10s  %s\n", "HEADER", "PTR", "SIZE", "STATE")
	for b := range a.Blocks() {
		state := "used"
		if b.Free {
			state = "free"
		}
		printInfo("%#-10x %-10s %10d  %s\n", b.Offset, b.Ptr, b.Size, state)
	}
}

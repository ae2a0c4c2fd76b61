package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/joshuapare/heapkit/pkg/trace"
)

var (
	replayLang  string
	replayChain bool
)

func init() {
	cmd := newReplayCmd()
	cmd.Flags().StringVar(&replayLang, "lang", "en", "Language tag used to format numbers")
	cmd.Flags().BoolVar(&replayChain, "chain", false, "Print the final block chain")
	rootCmd.AddCommand(cmd)
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay an allocation trace",
		Long: `The replay command runs an allocation script against a fresh arena and
reports what happened. Payloads are filled with a pattern and checked on free,
on realloc and on every "check" line. Use "-" to read the script from stdin.

Script lines:
  NAME = alloc SIZE
  NAME = calloc COUNT SIZE
  NAME = realloc NAME|nil SIZE
  free NAME|nil
  check

Example:
  heapctl replay workload.trace
  heapctl replay workload.trace --json
  heapctl replay - --chain < workload.trace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(args)
		},
	}
	return cmd
}

func runReplay(args []string) error {
	tag, err := language.Parse(replayLang)
	if err != nil {
		return fmt.Errorf("invalid --lang %q: %w", replayLang, err)
	}

	ops, err := readTrace(args[0])
	if err != nil {
		return err
	}
	printVerbose("Parsed %d operations from %s\n", len(ops), args[0])

	a, err := newArena()
	if err != nil {
		return err
	}
	defer a.Close()

	report, runErr := trace.Run(a, ops)

	if jsonOut {
		if err := printJSON(report); err != nil {
			return err
		}
		return runErr
	}

	if !quiet {
		if err := report.WriteText(os.Stdout, tag); err != nil {
			return err
		}
	}
	if replayChain {
		printInfo("\n")
		printChain(a)
	}
	if verbose && !quiet {
		a.PrintStats(os.Stdout)
	}
	return runErr
}

func readTrace(path string) ([]trace.Op, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		r = f
	}
	ops, err := trace.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ops, nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vic/waitq/pkg/script"
	"github.com/vic/waitq/pkg/waitq"
)

func main() {
	var input []byte
	var err error

	if len(os.Args) > 1 {
		input, err = os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
			os.Exit(1)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
	}

	ops, err := script.Parse(string(input))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Parse error: %v\n", err)
		os.Exit(1)
	}

	var q waitq.WaitQ[script.Waiter]
	q.Init()
	runner := script.NewRunner(&q, os.Stdout)

	start := time.Now()
	err = runner.Run(ops)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stats := runner.Stats()
	seconds := elapsed.Seconds()

	fmt.Fprintf(os.Stderr, "\nStats:\n")
	fmt.Fprintf(os.Stderr, "Backend: %s\n", waitq.BackendName)
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed)
	fmt.Fprintf(os.Stderr, "Total Operations: %d", len(ops))
	if seconds > 0 {
		fmt.Fprintf(os.Stderr, " (%.2f ops/sec)", float64(len(ops))/seconds)
	}
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Fprintf(os.Stderr, "\nBreakdown:\n")
	fmt.Fprintf(os.Stderr, "  Inserts:        %6d\n", stats.Inserts)
	fmt.Fprintf(os.Stderr, "  Pops:           %6d\n", stats.Pops)
	fmt.Fprintf(os.Stderr, "  Removes:        %6d\n", stats.Removes)
	if stats.Reprioritizes > 0 {
		fmt.Fprintf(os.Stderr, "  Reprioritizes:  %6d\n", stats.Reprioritizes)
	}
	fmt.Fprintf(os.Stderr, "  Max Length:     %6d\n", stats.MaxLen)
}

// Command amdahl computes and plots Amdahl's Law scaling metrics.
//
// Usage:
//
//	amdahl --fraction 0.05 --max_procs 100
//	amdahl -f 0.1 -p 50 --output-dir ./results
//	amdahl --config config.yaml
//	amdahl -f 0.2 -p 200 --no-plots --format csv --output results.csv
//	amdahl fit 1.9@2 3.5@4 6.0@8
//	amdahl advise -f 0.05 -p 64 --min-efficiency 0.5
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitInterrupted = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled) || ctx.Err() != nil:
		fmt.Fprintln(stderr, "\n\nOperation cancelled by user.")
		return exitInterrupted
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
}

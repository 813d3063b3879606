package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/aryszka/dllist/internal/shell"
)

// runs the shell until it quits, and returns the exit code
func run(o shell.Options, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := shell.New(o)
	defer s.Close()

	if err := s.Run(ctx); err != nil {
		fmt.Fprintln(stderr, "mish:", err)
		return 1
	}

	return 0
}

func main() {
	var (
		verbose     bool
		historySize int
	)
	flag.BoolVar(&verbose,
		"verbose", false,
		"start in verbose mode",
	)
	flag.IntVar(&historySize,
		"history-size", 1000,
		"maximum number of kept history entries, 0 for no limit",
	)
	flag.Parse()

	os.Exit(run(shell.Options{
		Verbose:     verbose,
		HistorySize: historySize,
	}, os.Stderr))
}

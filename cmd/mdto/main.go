package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/archiefkit/mdto/internal/cli"
	"github.com/archiefkit/mdto/pkg/mdto"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(mdto.ExitPanic)
		}
	}()

	if os.Getenv("MDTO_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(mdto.ExitCodeForError(err))
	}
}

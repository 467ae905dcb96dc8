package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/memvfs/internal/cli"
	"github.com/vvka-141/memvfs/pkg/vfs"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(vfs.ExitPanic)
		}
	}()

	if os.Getenv("MEMVFS_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(vfs.ExitCodeForError(err))
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rocketscienceinc/tictactoe-engine/internal/cli"
)

// main - is the entry point of the application. It runs the command line and reports failures on stderr.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := cli.Root().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

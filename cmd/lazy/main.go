// Package main is the entry point for the lazy CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/AnatoleLucet/lazy/cmd/lazy/commands"
)

func main() {
	if err := run(); err != nil {
		// %+v prints zerr metadata and the stack trace
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli := commands.New()
	defer cli.Close()

	return cli.Execute(context.Background())
}

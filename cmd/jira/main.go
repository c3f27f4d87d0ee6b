// Package main is the entry point for the ironjira CLI.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/ironjira/internal/app"
	"github.com/runoshun/ironjira/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// The container is built lazily so help, version and keygen work even
	// when the config is broken.
	build := func(opts app.Options) (*app.Container, error) {
		c, err := app.New(cwd, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize: %w", err)
		}
		return c, nil
	}

	rootCmd := cli.NewRootCommand(build, version)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

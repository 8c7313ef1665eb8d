// Package main is the entry point for the jtask CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jtask/internal/cli"
	"jtask/internal/commands"
	"jtask/internal/config"
	"jtask/internal/exitcode"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Variables already in the environment win over .env.
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		os.Exit(exitcode.AuthError)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, cli.FileStoreFactory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

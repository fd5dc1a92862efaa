// main.go
//
// Entry point for the kelime binary.
// Configuration (.env, environment, flags) and logging are set up by the
// cli package before any command runs.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robalobadob/kelime/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

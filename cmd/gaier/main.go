// Package main is the entry point for the gai-er CLI.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/eNzyOfficial/gai-er/cmd/gaier/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

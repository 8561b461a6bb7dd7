// Package main provides the CLI for the KonnectPro-GDS back-office.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/konnectpro/konnectpro-gds/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

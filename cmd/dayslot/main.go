package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/dayslot/adapter/cli"
	"github.com/felixgeelhaar/dayslot/adapter/cli/schedule"
)

func main() {
	// Cancel on shutdown signals so a running session returns cleanly
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Register commands
	cli.AddCommand(schedule.Cmd)

	cli.Execute(ctx)
}

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/satishbabariya/atlas/cli/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := commands.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

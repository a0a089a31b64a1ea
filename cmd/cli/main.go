package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/inmobix/internal/client/cli"
	"github.com/dmitrijs2005/inmobix/internal/client/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	open := func(ctx context.Context) (*cli.App, error) {
		return cli.NewApp(ctx, cfg, os.Stdin, os.Stdout)
	}

	if err := cli.NewRootCommand(open, os.Stdout).ExecuteContext(ctx); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/tomuthu-engineer/moibook/internal/api"
	"github.com/tomuthu-engineer/moibook/internal/cli"
	"github.com/tomuthu-engineer/moibook/internal/config"
	"github.com/tomuthu-engineer/moibook/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.New(cfg.Log)

	env := &cli.Env{
		Client: api.New(cfg.Backend),
		Token:  cfg.CLI.Token,
		In:     os.Stdin,
		Out:    os.Stdout,
		Now:    time.Now,
	}

	ok, cmd := cli.ParseFlags(env, os.Args[1:])
	if !ok {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cmd.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd.Name(), err)
		stop()
		os.Exit(1)
	}
}

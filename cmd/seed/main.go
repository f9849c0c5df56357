// Package main seeds the local kitchen database with meals.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	seedcmd "github.com/louisbranch/mealmax/internal/cmd/seed"
	entrypoint "github.com/louisbranch/mealmax/internal/platform/cmd"
	"github.com/louisbranch/mealmax/internal/platform/config"
)

func main() {
	cfg, err := seedcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceSeed))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = seedcmd.Run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		os.Exit(entrypoint.ReportFailure(os.Stderr, err, cfg.Locale))
	}
}

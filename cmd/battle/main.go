// Package main runs one meal battle or prints the leaderboard.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	battlecmd "github.com/louisbranch/mealmax/internal/cmd/battle"
	entrypoint "github.com/louisbranch/mealmax/internal/platform/cmd"
	"github.com/louisbranch/mealmax/internal/platform/config"
)

func main() {
	cfg, err := battlecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix(entrypoint.LogPrefix(entrypoint.ServiceBattle))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = battlecmd.Run(ctx, cfg, os.Stdout)
	stop()
	if err != nil {
		os.Exit(entrypoint.ReportFailure(os.Stderr, err, cfg.Locale))
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/quizzer/internal/buildinfo"
	"github.com/dmitrijs2005/quizzer/internal/client/cli"
	"github.com/dmitrijs2005/quizzer/internal/client/config"
	"github.com/dmitrijs2005/quizzer/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogBackend, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer s.Sync()
	}

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

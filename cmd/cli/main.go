package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/veilcam/veilcam/internal/buildinfo"
	"github.com/veilcam/veilcam/internal/cli"
	"github.com/veilcam/veilcam/internal/config"
	"github.com/veilcam/veilcam/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}

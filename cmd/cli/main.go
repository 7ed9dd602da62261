package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/rashedul-dev/Qourio-client/internal/buildinfo"
	"github.com/rashedul-dev/Qourio-client/internal/client/cli"
	"github.com/rashedul-dev/Qourio-client/internal/client/config"
	"github.com/rashedul-dev/Qourio-client/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}

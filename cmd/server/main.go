package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/ballotkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/ballotkeeper/internal/logging"
	"github.com/dmitrijs2005/ballotkeeper/internal/server"
	"github.com/dmitrijs2005/ballotkeeper/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.New(os.Stdout, "json", cfg.LogLevel)

	app := server.NewApp(cfg, logger)
	if err := app.Run(context.Background()); err != nil {
		logger.Error(context.Background(), "server exited", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/medkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/medkeeper/internal/client/cli"
	"github.com/dmitrijs2005/medkeeper/internal/client/client"
	"github.com/dmitrijs2005/medkeeper/internal/client/config"
	"github.com/dmitrijs2005/medkeeper/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/medkeeper/internal/client/services"
	"github.com/dmitrijs2005/medkeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	db, err := client.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	apiClient := client.NewHTTPClient(cfg.ServerURL, logger)
	auth := services.NewSessionManager(apiClient, sessions.NewSQLiteRepository(db), logger)
	inventory := services.NewInventoryClient(apiClient, auth, logger)

	app := cli.NewApp(auth, inventory, cfg.ExpiryWarningDays, logger)
	app.Run(ctx)

}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/ericogr/pokebattle/internal/api"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
	"github.com/ericogr/pokebattle/internal/service"
)

func main() {
	if lvl := os.Getenv(constants.EnvLogLevel); lvl != "" {
		if err := logging.Init(lvl); err != nil {
			logging.Fatal("Invalid log level", err, logging.Fields{"level": lvl})
		}
	}
	defer logging.Sync()

	// Path may be provided via POKEBATTLE_CONFIG; a missing file means defaults.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}
	cfg := loadConfigOrExit(configPath)
	repo := createRepositoryOrExit(cfg)

	hub := service.NewHub(repo, cfg.Dex, hubOptions(cfg))
	handler := api.NewBattleHandler(hub, repo, cfg.Dex, 0)

	router := gin.Default()
	api.RegisterRoutes(router, handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := serve(ctx, cfg.ServerAddress, router)
	hub.Shutdown()
	if err != nil {
		logging.Fatal("Server stopped", err, nil)
	}
	logging.Info("Server stopped", nil)
}

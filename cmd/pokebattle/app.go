package main

import (
	"github.com/ericogr/pokebattle/internal/config"
	"github.com/ericogr/pokebattle/internal/logging"
	"github.com/ericogr/pokebattle/internal/service"
	"github.com/ericogr/pokebattle/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid pokebattle configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(cfg *config.LoadedConfig) storage.Repository {
	db, err := storage.OpenDB(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewRepository(db)
}

func hubOptions(cfg *config.LoadedConfig) service.HubOptions {
	return service.HubOptions{
		TeamSize:    cfg.TeamSize,
		AfkTimeout:  cfg.AfkTimeout,
		AfkInterval: cfg.AfkCheckInterval,
		RecordsURL:  cfg.RecordsURL,
	}
}

package main

import (
	"os"

	"github.com/draftdesk/internal/cli"
	"github.com/draftdesk/internal/config"
	"github.com/draftdesk/internal/repository"
	"github.com/draftdesk/internal/service"
	"github.com/draftdesk/internal/storage"
	"github.com/draftdesk/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()

	// Load configuration once; it holds for the whole session
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Open the article store
	store, err := storage.Open(cfg.Storage.Path, cfg.Storage.KeyPrefix, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open article store")
	}
	defer store.Close()

	// Initialize repositories; the terminal prompt resolves the "ask"
	// conflict policy
	repos := repository.New(store, cfg, cli.ConfirmPrompt, log)

	// Initialize services
	services := service.NewServices(repos, cfg, log)

	if err := cli.Execute(&cli.Deps{
		Repos:    repos,
		Services: services,
		Config:   cfg,
		Log:      log,
	}); err != nil {
		os.Exit(1)
	}
}

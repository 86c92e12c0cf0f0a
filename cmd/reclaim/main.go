// Command reclaim garbage-collects the media of deleted content records.
package main

import (
	"os"

	"github.com/custodia-labs/reclaim/internal/adapters/driven/config/file"
	"github.com/custodia-labs/reclaim/internal/adapters/driven/integrations"
	"github.com/custodia-labs/reclaim/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/reclaim/internal/adapters/driving/cli"
	"github.com/custodia-labs/reclaim/internal/core/services"
	"github.com/custodia-labs/reclaim/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(wire)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// wire builds the services: config, settings, content store, registry, pipeline.
func wire(opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		// Leave the settings commands usable so the file can be repaired.
		logger.Warn("%v", err)
		return &cli.Services{Settings: settingsService}, func() {}, nil
	}
	if settings.UploadBaseURL == "" {
		logger.Warn("uploads.base_url is not set; media URLs cannot be resolved")
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.DataDir
	}
	store, err := sqlite.NewStore(dataDir, settings.UploadBaseURL)
	if err != nil {
		return nil, nil, err
	}
	content := store.ContentStore()
	events := store.EventLog()

	registry := services.NewDefaultEncodingRegistry(content, integrations.FromSettings(*settings), *settings)
	reclaimService := services.NewReclaimService(content, registry, events, *settings)
	reclaimService.Register(content)

	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing content store: %v", err)
		}
	}
	return &cli.Services{
		Reclaimer: reclaimService,
		Settings:  settingsService,
		History:   services.NewHistoryService(events),
		Importer:  services.NewImportService(content),
	}, closeStore, nil
}

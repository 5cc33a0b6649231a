package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DrZoddiak/ore-monitor/config"
	"github.com/DrZoddiak/ore-monitor/db"
	"github.com/DrZoddiak/ore-monitor/logger"
	"github.com/DrZoddiak/ore-monitor/ore"

	"go.uber.org/zap"
)

// bootstrapLocal handles initialization for commands that only touch local
// state and never talk to Ore.
func bootstrapLocal(path string) config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Log.Fatalw("Failed to load configuration", zap.Error(err))
	}

	db.InitDatabase(cfg.DatabasePath)
	logger.Log.Infow("Database initialized", zap.String("path", cfg.DatabasePath))

	return cfg
}

// bootstrap handles shared initialization logic for commands.
func bootstrap(path string) (config.Config, *ore.Client) {
	cfg := bootstrapLocal(path)

	if cfg.OreAPIKey == "" {
		logger.Log.Fatal("Error: ORE_API_KEY must be set.")
	}

	client, err := ore.NewClient(cfg)
	if err != nil {
		logger.Log.Fatalw("Failed to create Ore client", zap.Error(err))
	}

	return cfg, client
}

// archiveAndCleanupOld handles moving a replaced plugin file to the versions
// archive or deleting it, and records the old version in history.
func archiveAndCleanupOld(existing db.Plugin, pluginsDir string, cfg *config.Config, log *zap.SugaredLogger) {
	oldFilePath := filepath.Join(pluginsDir, existing.FileName)
	archivePath := ""

	if cfg.KeepOldVersions {
		versionsDir := filepath.Join(pluginsDir, "versions")
		_ = os.MkdirAll(versionsDir, 0755)

		newPathInVersions := filepath.Join(versionsDir, fmt.Sprintf("%s-%s", existing.Version, existing.FileName))
		if err := os.Rename(oldFilePath, newPathInVersions); err == nil {
			archivePath = newPathInVersions
			log.Infow("Archived old plugin version",
				zap.String("file", existing.FileName),
				zap.String("archive_path", newPathInVersions),
			)
		} else if !os.IsNotExist(err) {
			log.Warnw("Failed to archive old plugin version", zap.String("file", existing.FileName), zap.Error(err))
		}
	} else {
		if err := os.Remove(oldFilePath); err != nil && !os.IsNotExist(err) {
			log.Warnw("Failed to remove old plugin version", zap.String("file", existing.FileName), zap.Error(err))
		}
	}

	if err := db.DB.Create(&db.PluginVersion{
		PluginID:    existing.PluginID,
		Version:     existing.Version,
		FileName:    existing.FileName,
		ArchivePath: archivePath,
	}).Error; err != nil {
		log.Warnw("Failed to save plugin version history to database", zap.Error(err))
	}
}

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DrZoddiak/ore-monitor/db"
	"github.com/DrZoddiak/ore-monitor/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rollbackCmd represents the rollback command
var rollbackCmd = &cobra.Command{
	Use:   "rollback [pluginId]",
	Short: "Rollback a plugin to its previous version",
	Long: `Rollback a plugin to its previous version.
Example: ore-monitor rollback nucleus

This will remove the current version of the plugin and
replace it with the most recent previous version.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		pluginID := args[0]
		bootstrapLocal(".")
		rollbackPlugin(pluginID)
	},
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}

// rollbackPlugin handles the rollback process for a specific plugin
func rollbackPlugin(pluginID string) {
	// Find the current plugin
	var current db.Plugin
	result := db.DB.Where("plugin_id = ?", pluginID).First(&current)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			logger.Log.Warnw("Plugin not found in database", zap.Error(result.Error))
			return
		}
		logger.Log.Fatalw("Failed to query database", zap.Error(result.Error))
	}

	log := logger.Log.With(zap.String("plugin", current.Name))

	log.Infow("Attempting rollback")

	// Find the most recent previous version
	var previous db.PluginVersion
	result = db.DB.Where("plugin_id = ?", pluginID).Order("created_at DESC").First(&previous)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			log.Fatalw("No previous versions found for plugin", zap.String("plugin", pluginID))
		}
		log.Fatalw("Failed to query version history", zap.Error(result.Error))
	}

	// Check if the archive file still exists
	if previous.ArchivePath == "" {
		log.Fatalw("Previous version for plugin has no archive path", zap.String("plugin", pluginID))
	}

	if _, err := os.Stat(previous.ArchivePath); errors.Is(err, os.ErrNotExist) {
		log.Fatalw("Archive file not found", zap.String("archive_path", previous.ArchivePath))
	}

	// Get the plugins directory
	pluginsDir := filepath.Dir(current.InstallPath)

	// Delete the current file
	log.Infow("Removing current version", zap.String("file", current.InstallPath))
	if err := os.Remove(current.InstallPath); err != nil && !os.IsNotExist(err) {
		log.Warnw("Failed to remove current version", zap.String("file", current.InstallPath), zap.Error(err))
	}

	// Copy the previous version back into the plugins directory
	targetPath := filepath.Join(pluginsDir, previous.FileName)

	log.Infow("Restoring previous version",
		zap.String("file", previous.FileName),
		zap.String("version", previous.Version),
	)

	// Read the source file
	sourceBytes, err := os.ReadFile(previous.ArchivePath)
	if err != nil {
		log.Fatalw("Failed to read archive file", zap.String("file", previous.ArchivePath), zap.Error(err))
	}

	// Write to the destination
	if err := os.WriteFile(targetPath, sourceBytes, 0644); err != nil {
		log.Fatalw("Failed to write file", zap.String("file", targetPath), zap.Error(err))
	}

	// Update the current plugin record in the database
	current.Version = previous.Version
	current.FileName = previous.FileName
	current.InstallPath = targetPath

	if err := db.DB.Save(&current).Error; err != nil {
		log.Fatalw("Failed to update database record", zap.Error(err))
	}

	// Delete the rollback record
	if err := db.DB.Delete(&previous).Error; err != nil {
		log.Warnw("Failed to delete history record",
			zap.String("version", previous.Version),
			zap.Error(err),
		)
	}

	log.Infow("Rollback successful",
		zap.String("restored_version", current.Version),
		zap.String("restored_file", current.FileName),
	)

	fmt.Printf("Successfully rolled back %s to version %s\n", pluginID, previous.Version)
}

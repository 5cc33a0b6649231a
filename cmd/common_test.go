package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DrZoddiak/ore-monitor/config"
	"github.com/DrZoddiak/ore-monitor/db"

	"go.uber.org/zap"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	db.InitDatabase(filepath.Join(t.TempDir(), "test.db"))
}

func writePluginFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("jar bytes"), 0644); err != nil {
		t.Fatalf("failed to write plugin file: %v", err)
	}
	return path
}

func TestArchiveAndCleanupOld(t *testing.T) {
	log := zap.NewNop().Sugar()

	t.Run("keep old versions archives the file", func(t *testing.T) {
		setupTestDB(t)
		pluginsDir := t.TempDir()
		writePluginFile(t, pluginsDir, "nucleus-2.1.4.jar")

		existing := db.Plugin{
			PluginID: "nucleus",
			Version:  "2.1.4",
			FileName: "nucleus-2.1.4.jar",
		}
		cfg := config.Config{KeepOldVersions: true}

		archiveAndCleanupOld(existing, pluginsDir, &cfg, log)

		archived := filepath.Join(pluginsDir, "versions", "2.1.4-nucleus-2.1.4.jar")
		if _, err := os.Stat(archived); err != nil {
			t.Errorf("expected archived file at %s: %v", archived, err)
		}
		if _, err := os.Stat(filepath.Join(pluginsDir, "nucleus-2.1.4.jar")); !os.IsNotExist(err) {
			t.Error("original file should have been moved")
		}

		var history db.PluginVersion
		if err := db.DB.Where("plugin_id = ?", "nucleus").First(&history).Error; err != nil {
			t.Fatalf("expected a history row: %v", err)
		}
		if history.ArchivePath != archived {
			t.Errorf("history archive path = %q, want %q", history.ArchivePath, archived)
		}
	})

	t.Run("without keep old versions the file is removed", func(t *testing.T) {
		setupTestDB(t)
		pluginsDir := t.TempDir()
		writePluginFile(t, pluginsDir, "nucleus-2.1.4.jar")

		existing := db.Plugin{
			PluginID: "nucleus",
			Version:  "2.1.4",
			FileName: "nucleus-2.1.4.jar",
		}
		cfg := config.Config{KeepOldVersions: false}

		archiveAndCleanupOld(existing, pluginsDir, &cfg, log)

		if _, err := os.Stat(filepath.Join(pluginsDir, "nucleus-2.1.4.jar")); !os.IsNotExist(err) {
			t.Error("old file should have been removed")
		}

		var history db.PluginVersion
		if err := db.DB.Where("plugin_id = ?", "nucleus").First(&history).Error; err != nil {
			t.Fatalf("expected a history row: %v", err)
		}
		if history.ArchivePath != "" {
			t.Errorf("history archive path should be empty, got %q", history.ArchivePath)
		}
	})

	t.Run("missing old file still records history", func(t *testing.T) {
		setupTestDB(t)
		pluginsDir := t.TempDir()

		existing := db.Plugin{
			PluginID: "luckperms",
			Version:  "5.0.0",
			FileName: "luckperms-5.0.0.jar",
		}
		cfg := config.Config{KeepOldVersions: true}

		archiveAndCleanupOld(existing, pluginsDir, &cfg, log)

		var history db.PluginVersion
		if err := db.DB.Where("plugin_id = ?", "luckperms").First(&history).Error; err != nil {
			t.Fatalf("expected a history row: %v", err)
		}
	})
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/DrZoddiak/ore-monitor/db"
	"github.com/DrZoddiak/ore-monitor/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install <pluginId> <version>",
	Short: "Installs a plugin from a plugin id",
	Long: `Downloads the given version of a plugin into the plugins directory
and records the install. A previously installed file of the same plugin is
archived when KEEP_OLD_VERSIONS is set, removed otherwise.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		runInstall(args[0], args[1], dir)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringP("dir", "d", "", "Directory to install into (defaults to PLUGINS_DIR)")
}

func runInstall(pluginID, versionName, dir string) {
	cfg, client := bootstrap(".")

	if dir == "" {
		dir = cfg.PluginsDir
	}

	log := logger.Log.With(zap.String("plugin_id", pluginID), zap.String("version", versionName))

	// The API has no download link; the project's namespace builds the
	// website download route.
	project, err := client.GetProject(pluginID)
	if err != nil {
		log.Fatalw("Failed to get project", zap.Error(err))
	}

	// Archive or remove the previous install before replacing it.
	var existing db.Plugin
	result := db.DB.Where("plugin_id = ?", pluginID).First(&existing)
	if result.Error == nil {
		archiveAndCleanupOld(existing, dir, &cfg, log)
	} else if result.Error != gorm.ErrRecordNotFound {
		log.Warnw("Failed to query database for existing install", zap.Error(result.Error))
	}

	log.Infow("Downloading plugin...",
		zap.String("owner", project.Namespace.Owner),
		zap.String("slug", project.Namespace.Slug),
	)
	fileName, err := client.DownloadPluginFile(log, dir, project.Namespace.Owner, project.Namespace.Slug, versionName)
	if err != nil {
		log.Fatalw("Failed to download plugin", zap.Error(err))
	}

	installPath := filepath.Join(dir, fileName)
	if result.Error == nil {
		existing.Name = project.Name
		existing.Owner = project.Namespace.Owner
		existing.Slug = project.Namespace.Slug
		existing.Version = versionName
		existing.FileName = fileName
		existing.InstallPath = installPath
		if err := db.DB.Save(&existing).Error; err != nil {
			log.Warnw("Failed to update database record", zap.Error(err))
		}
	} else {
		newPlugin := db.Plugin{
			PluginID:    pluginID,
			Name:        project.Name,
			Owner:       project.Namespace.Owner,
			Slug:        project.Namespace.Slug,
			Version:     versionName,
			FileName:    fileName,
			InstallPath: installPath,
		}
		if err := db.DB.Create(&newPlugin).Error; err != nil {
			log.Warnw("Failed to save plugin to database", zap.Error(err))
		}
	}

	log.Infow("Successfully downloaded file", zap.String("filename", fileName))
	fmt.Printf("Installed '%s' into '%s'\n", fileName, dir)
}

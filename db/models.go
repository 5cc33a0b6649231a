package db

import (
	"gorm.io/gorm"
)

// Plugin represents an installed plugin tracked in the database.
type Plugin struct {
	gorm.Model
	PluginID    string `gorm:"uniqueIndex"` // Ore plugin id (unique identifier)
	Name        string // Plugin display name
	Owner       string // Namespace owner, used to build download links
	Slug        string // Namespace slug
	Version     string // Installed version label
	FileName    string // Downloaded file name
	InstallPath string // Path where the plugin is currently installed
}

// PluginVersion represents a historical version of an installed plugin.
type PluginVersion struct {
	gorm.Model
	PluginID    string // References Plugin.PluginID
	Version     string // Version label at the time it was replaced
	FileName    string // Original file name
	ArchivePath string // Path to the archived file (if kept)
}

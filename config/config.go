package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

const defaultBaseURL = "https://ore.spongepowered.org/api/v2"

// Config holds all configuration for the application.
// Values are loaded by Viper from a .env file and/or environment variables.
type Config struct {
	OreAPIKey       string `mapstructure:"ORE_API_KEY"`
	OreBaseURL      string `mapstructure:"ORE_BASE_URL"`
	UserAgent       string `mapstructure:"USERAGENT"`
	PluginsDir      string `mapstructure:"PLUGINS_DIR"`
	KeepOldVersions bool   `mapstructure:"KEEP_OLD_VERSIONS"`
	DatabasePath    string `mapstructure:"-"` // Not from env, derived
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Info("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	viper.AutomaticEnv()

	for key, env := range map[string]string{
		"ore_api_key":       "ORE_API_KEY",
		"ore_base_url":      "ORE_BASE_URL",
		"useragent":         "USERAGENT",
		"plugins_dir":       "PLUGINS_DIR",
		"keep_old_versions": "KEEP_OLD_VERSIONS",
	} {
		if bindErr := viper.BindEnv(key, env); bindErr != nil {
			slog.Warn("Unable to bind env var", "env", env, "error", bindErr)
		}
	}

	if vipErr = viper.Unmarshal(&config); vipErr != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", vipErr)
	}

	processConfigDefaults(&config)

	// Viper doesn't handle bool defaults from env well without explicit SetDefault,
	// so interpret the raw string value ourselves.
	keepOldStr := viper.GetString("KEEP_OLD_VERSIONS")
	if keepOldStr == "" {
		config.KeepOldVersions = false
	} else {
		keepOld, parseErr := strconv.ParseBool(keepOldStr)
		if parseErr != nil {
			slog.Warn("Invalid value for KEEP_OLD_VERSIONS, defaulting to false", "value", keepOldStr, "error", parseErr)
			config.KeepOldVersions = false
		} else {
			config.KeepOldVersions = keepOld
		}
	}

	if err := validateAndEnsureDirectories(&config); err != nil {
		return Config{}, err
	}

	// Place the database alongside the plugins for portability.
	config.DatabasePath = filepath.Join(config.PluginsDir, "ore-monitor.db")

	return config, nil
}

// processConfigDefaults fills in defaults for values not provided by the
// environment or config file.
func processConfigDefaults(cfg *Config) {
	if cfg.OreBaseURL == "" {
		cfg.OreBaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ore-monitor/dev (unknown-user)"
		slog.Warn("USERAGENT not set in config or environment, using default.")
	}
	if cfg.PluginsDir == "" {
		cfg.PluginsDir = "."
	}
}

// validateAndEnsureDirectories makes sure the plugins directory and its
// versions archive subdirectory exist, creating them if needed.
func validateAndEnsureDirectories(cfg *Config) error {
	if cfg.PluginsDir == "" {
		slog.Error("PLUGINS_DIR is not set")
		return fmt.Errorf("PLUGINS_DIR is required")
	}

	for _, dir := range []string{cfg.PluginsDir, filepath.Join(cfg.PluginsDir, "versions")} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			slog.Info("Directory does not exist, creating it", "path", dir)
			if err := os.MkdirAll(dir, 0755); err != nil {
				slog.Error("Failed to create directory", "path", dir, "error", err)
				return err
			}
		} else if err != nil {
			slog.Error("Failed to check directory", "path", dir, "error", err)
			return err
		}
	}

	return nil
}

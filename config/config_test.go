package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.OreBaseURL != defaultBaseURL {
			t.Errorf("Expected OreBaseURL to be %s, got %s", defaultBaseURL, cfg.OreBaseURL)
		}
		if cfg.UserAgent == "" {
			t.Error("Expected UserAgent to have a default value")
		}
		if cfg.PluginsDir != "." {
			t.Errorf("Expected PluginsDir to default to current directory, got %s", cfg.PluginsDir)
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		viper.Reset()
		cfg := Config{
			OreBaseURL: "http://localhost:8080/api/v2",
			UserAgent:  "custom-agent",
			PluginsDir: "/srv/sponge/plugins",
		}
		processConfigDefaults(&cfg)

		if cfg.OreBaseURL != "http://localhost:8080/api/v2" {
			t.Errorf("Expected OreBaseURL to stay custom, got %s", cfg.OreBaseURL)
		}
		if cfg.UserAgent != "custom-agent" {
			t.Errorf("Expected UserAgent to stay custom-agent, got %s", cfg.UserAgent)
		}
		if cfg.PluginsDir != "/srv/sponge/plugins" {
			t.Errorf("Expected PluginsDir to stay custom, got %s", cfg.PluginsDir)
		}
	})
}

func TestValidateAndEnsureDirectories(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing plugins dir", func(t *testing.T) {
		cfg := Config{PluginsDir: ""}
		err := validateAndEnsureDirectories(&cfg)
		if err == nil {
			t.Error("Expected error for missing PluginsDir")
		}
	})

	t.Run("creates directories", func(t *testing.T) {
		pluginsDir := filepath.Join(tmpDir, "plugins")
		cfg := Config{PluginsDir: pluginsDir}
		err := validateAndEnsureDirectories(&cfg)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		for _, dir := range []string{pluginsDir, filepath.Join(pluginsDir, "versions")} {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				t.Errorf("Directory %s was not created", dir)
			}
		}
	})
}

package ore

import (
	"testing"

	"github.com/DrZoddiak/ore-monitor/config"
)

func TestNewClient(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		client, err := NewClient(config.Config{
			OreAPIKey:  "key",
			OreBaseURL: "https://ore.spongepowered.org/api/v2",
			UserAgent:  "ore-monitor/test",
		})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if client.BaseURL != "https://ore.spongepowered.org/api/v2" {
			t.Errorf("BaseURL = %q", client.BaseURL)
		}
		if client.WebURL != "https://ore.spongepowered.org" {
			t.Errorf("WebURL = %q, want website root", client.WebURL)
		}
	})

	t.Run("missing api key", func(t *testing.T) {
		_, err := NewClient(config.Config{UserAgent: "test"})
		if err == nil {
			t.Error("Expected error for missing ORE_API_KEY")
		}
	})

	t.Run("missing user agent", func(t *testing.T) {
		_, err := NewClient(config.Config{OreAPIKey: "key"})
		if err == nil {
			t.Error("Expected error for missing USERAGENT")
		}
	})
}

func TestExtractFilename(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		expected   string
		expectedOK bool
	}{
		{"quoted filename", `attachment; filename="nucleus-2.1.4.jar"`, "nucleus-2.1.4.jar", true},
		{"no quotes", `attachment; filename=plugin.jar`, "", false},
		{"single quote only", `attachment; filename="broken`, "", false},
		{"empty header", "", "", false},
		{"empty quotes", `attachment; filename=""`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := extractFilename(tt.header)
			if ok != tt.expectedOK || name != tt.expected {
				t.Errorf("extractFilename(%q) = %q, %v, want %q, %v",
					tt.header, name, ok, tt.expected, tt.expectedOK)
			}
		})
	}
}

func TestSearchOptionsValues(t *testing.T) {
	relevance := true
	opts := SearchOptions{
		Query:      "economy",
		Categories: []string{"economy", "admin_tools"},
		Tags:       []string{"Sponge"},
		Owner:      "someone",
		Sort:       "downloads",
		Relevance:  &relevance,
		Limit:      25,
		Offset:     50,
	}

	params := opts.values()
	if params.Get("q") != "economy" {
		t.Errorf("q = %q", params.Get("q"))
	}
	if got := params["categories"]; len(got) != 2 || got[0] != "economy" || got[1] != "admin_tools" {
		t.Errorf("categories = %v", got)
	}
	if params.Get("relevance") != "true" {
		t.Errorf("relevance = %q", params.Get("relevance"))
	}
	if params.Get("limit") != "25" || params.Get("offset") != "50" {
		t.Errorf("limit/offset = %q/%q", params.Get("limit"), params.Get("offset"))
	}

	t.Run("zero values omitted", func(t *testing.T) {
		params := SearchOptions{}.values()
		for _, key := range []string{"q", "categories", "tags", "owner", "sort", "relevance", "limit"} {
			if params.Has(key) {
				t.Errorf("Expected %s to be omitted, got %q", key, params.Get(key))
			}
		}
		// Offset always carries a value, matching the CLI's zero default.
		if params.Get("offset") != "0" {
			t.Errorf("offset = %q, want 0", params.Get("offset"))
		}
	})
}

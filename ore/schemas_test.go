package ore

import "testing"

func promotedFixture() []PromotedVersion {
	return []PromotedVersion{
		{
			Version: "1.0",
			Tags:    []PromotedVersionTag{{Name: "Sponge API", DisplayData: "6.2"}},
		},
		{
			Version: "2.0",
			Tags:    []PromotedVersionTag{{Name: "Sponge API", DisplayData: "7.3"}},
		},
	}
}

func TestVersionFromTag(t *testing.T) {
	project := Project{PromotedVersions: promotedFixture()}

	t.Run("matches the tagged generation", func(t *testing.T) {
		if got := project.VersionFromTag(7); got != "2.0" {
			t.Errorf("VersionFromTag(7) = %q, want 2.0", got)
		}
		if got := project.VersionFromTag(6); got != "1.0" {
			t.Errorf("VersionFromTag(6) = %q, want 1.0", got)
		}
	})

	t.Run("no match returns empty sentinel", func(t *testing.T) {
		if got := project.VersionFromTag(9); got != "" {
			t.Errorf("VersionFromTag(9) = %q, want empty string", got)
		}
	})

	t.Run("first match wins in list order", func(t *testing.T) {
		p := Project{PromotedVersions: []PromotedVersion{
			{Version: "2.1", Tags: []PromotedVersionTag{{Name: "Sponge API", DisplayData: "7.0"}}},
			{Version: "2.0", Tags: []PromotedVersionTag{{Name: "Sponge API", DisplayData: "7.3"}}},
		}}
		if got := p.VersionFromTag(7); got != "2.1" {
			t.Errorf("VersionFromTag(7) = %q, want 2.1", got)
		}
	})
}

func TestSpongeMajor(t *testing.T) {
	tests := []struct {
		name     string
		pv       PromotedVersion
		expected uint32
	}{
		{
			"simple tag",
			PromotedVersion{Tags: []PromotedVersionTag{{Name: "Sponge API", DisplayData: "7.3"}}},
			7,
		},
		{
			"first sponge tag wins",
			PromotedVersion{Tags: []PromotedVersionTag{
				{Name: "Sponge API", DisplayData: "6.0"},
				{Name: "Sponge API", DisplayData: "7.0"},
			}},
			6,
		},
		{
			"non-sponge tags skipped",
			PromotedVersion{Tags: []PromotedVersionTag{
				{Name: "Channel", DisplayData: "Release"},
				{Name: "SpongeForge", DisplayData: "8.1"},
			}},
			8,
		},
		{
			"no tags",
			PromotedVersion{},
			0,
		},
		{
			"missing display data",
			PromotedVersion{Tags: []PromotedVersionTag{{Name: "Sponge API"}}},
			0,
		},
		{
			"display data without dot",
			PromotedVersion{Tags: []PromotedVersionTag{{Name: "Sponge API", DisplayData: "7"}}},
			0,
		},
		{
			"non-numeric display data",
			PromotedVersion{Tags: []PromotedVersionTag{{Name: "Sponge API", DisplayData: "dev.1"}}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pv.SpongeMajor(); got != tt.expected {
				t.Errorf("SpongeMajor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

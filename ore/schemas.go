// Package ore is a client for the Sponge Ore plugin-registry v2 API.
package ore

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Project is a project record as returned by /projects/{pluginId}.
type Project struct {
	CreatedAt        time.Time         `json:"created_at"`
	PluginID         string            `json:"plugin_id"`
	Name             string            `json:"name"`
	Namespace        ProjectNamespace  `json:"namespace"`
	PromotedVersions []PromotedVersion `json:"promoted_versions"`
	Stats            ProjectStatsAll   `json:"stats"`
	Category         string            `json:"category"`
	Description      string            `json:"description"`
	LastUpdated      time.Time         `json:"last_updated"`
	Visibility       string            `json:"visibility"`
	IconURL          string            `json:"icon_url"`
}

// ProjectNamespace identifies a project by owner and slug; the pair forms the
// website path used for downloads.
type ProjectNamespace struct {
	Owner string `json:"owner"`
	Slug  string `json:"slug"`
}

// PromotedVersion is a published release flagged as current for one or more
// platform API generations, identified by its tags.
type PromotedVersion struct {
	Version string               `json:"version"`
	Tags    []PromotedVersionTag `json:"tags"`
}

// PromotedVersionTag describes one facet of a promoted version. For the tag
// whose name contains "Sponge", DisplayData encodes the platform API version
// (e.g. "7.3").
type PromotedVersionTag struct {
	Name             string          `json:"name"`
	Data             string          `json:"data"`
	DisplayData      string          `json:"display_data"`
	MinecraftVersion string          `json:"minecraft_version"`
	Color            VersionTagColor `json:"color"`
}

// VersionTagColor carries the web UI colors of a tag.
type VersionTagColor struct {
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// ProjectStatsAll aggregates a project's lifetime and recent counters.
type ProjectStatsAll struct {
	Views           int64 `json:"views"`
	Downloads       int64 `json:"downloads"`
	RecentViews     int64 `json:"recent_views"`
	RecentDownloads int64 `json:"recent_downloads"`
	Stars           int64 `json:"stars"`
	Watchers        int64 `json:"watchers"`
}

// Pagination describes the window of a paginated result.
type Pagination struct {
	Limit  int64 `json:"limit"`
	Offset int64 `json:"offset"`
	Count  int64 `json:"count"`
}

// PaginatedProjectResult is the response shape of /projects.
type PaginatedProjectResult struct {
	Pagination Pagination `json:"pagination"`
	Result     []Project  `json:"result"`
}

// VersionDependency is a dependency declared by a remote version.
type VersionDependency struct {
	PluginID string `json:"plugin_id"`
	Version  string `json:"version"`
}

// VersionTag describes one facet of a (non-promoted) version.
type VersionTag struct {
	Name  string          `json:"name"`
	Data  string          `json:"data"`
	Color VersionTagColor `json:"color"`
}

// FileInfo describes the downloadable file of a version.
type FileInfo struct {
	Name      string  `json:"name"`
	SizeBytes float64 `json:"size_bytes"`
	MD5Hash   string  `json:"md5_hash"`
}

// VersionStatsAll aggregates a version's counters.
type VersionStatsAll struct {
	Downloads int64 `json:"downloads"`
}

// Version is one release of a project, as returned by
// /projects/{pluginId}/versions/{name}.
type Version struct {
	CreatedAt    time.Time           `json:"created_at"`
	Name         string              `json:"name"`
	Dependencies []VersionDependency `json:"dependencies"`
	Visibility   string              `json:"visibility"`
	Description  string              `json:"description"`
	Stats        VersionStatsAll     `json:"stats"`
	FileInfo     FileInfo            `json:"file_info"`
	Author       string              `json:"author"`
	ReviewState  string              `json:"review_state"`
	Tags         []VersionTag        `json:"tags"`
}

// PaginatedVersionResult is the response shape of /projects/{pluginId}/versions.
type PaginatedVersionResult struct {
	Pagination Pagination `json:"pagination"`
	Result     []Version  `json:"result"`
}

// VersionFromTag returns the version string of the first promoted version
// tagged with the given Sponge API major version, or the empty string when no
// promoted version matches. The empty string is a sentinel the caller reports
// as "no compatible remote version", not an error: projects routinely promote
// concurrent builds for several API generations at once, and only the
// generation the local installation targets is comparable.
func (p *Project) VersionFromTag(major uint32) string {
	for _, pv := range p.PromotedVersions {
		if pv.SpongeMajor() == major {
			return pv.Version
		}
	}
	return ""
}

// SpongeMajor computes the platform API major version a promoted version is
// tagged with: the first tag whose name contains "Sponge" carries it as the
// leading dot-separated integer of its display data. Any missing or
// unparseable step yields 0, a non-matching candidate rather than an error.
func (pv *PromotedVersion) SpongeMajor() uint32 {
	for _, tag := range pv.Tags {
		if !strings.Contains(tag.Name, "Sponge") {
			continue
		}
		major, _, found := strings.Cut(tag.DisplayData, ".")
		if !found {
			return 0
		}
		n, err := strconv.ParseUint(major, 10, 32)
		if err != nil {
			return 0
		}
		return uint32(n)
	}
	return 0
}

func (p *Project) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plugin ID : %s\n", p.Namespace.Slug)
	fmt.Fprintf(&b, "Author : %s\n", p.Namespace.Owner)
	fmt.Fprintf(&b, "Description : %s\n", p.Description)
	fmt.Fprintf(&b, "Last Updated : %s\n", p.LastUpdated.Format(time.RFC3339))

	promoted := make([]string, 0, len(p.PromotedVersions))
	for _, pv := range p.PromotedVersions {
		tags := make([]string, 0, len(pv.Tags))
		for _, tag := range pv.Tags {
			tags = append(tags, tag.Name+" "+tag.DisplayData)
		}
		promoted = append(promoted, fmt.Sprintf("%s - %s", pv.Version, strings.Join(tags, "-")))
	}
	fmt.Fprintf(&b, "Promoted Version : %s\n", strings.Join(promoted, "\n\t| "))
	b.WriteString(p.Stats.String())
	return b.String()
}

func (s ProjectStatsAll) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Views : %d\n", s.Views)
	fmt.Fprintf(&b, "Recent Views : %d\n", s.RecentViews)
	fmt.Fprintf(&b, "Downloads : %d\n", s.Downloads)
	fmt.Fprintf(&b, "Recent Downloads : %d\n", s.RecentDownloads)
	fmt.Fprintf(&b, "Stars : %d\n", s.Stars)
	fmt.Fprintf(&b, "Watchers : %d", s.Watchers)
	return b.String()
}

func (v *Version) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", center(fmt.Sprintf("[%s]", v.Name), 45))
	fmt.Fprintf(&b, "Author : %s\n", v.Author)
	fmt.Fprintf(&b, "Created at : %s\n", v.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Review State : %s\n", v.ReviewState)

	tags := make([]string, 0, len(v.Tags))
	for _, tag := range v.Tags {
		tags = append(tags, fmt.Sprintf("[%s:%s]", tag.Name, tag.Data))
	}
	fmt.Fprintf(&b, "Tags : %s\n", strings.Join(tags, " "))

	deps := make([]string, 0, len(v.Dependencies))
	for _, dep := range v.Dependencies {
		deps = append(deps, fmt.Sprintf("[%s:%s]", dep.PluginID, dep.Version))
	}
	fmt.Fprintf(&b, "Dependencies : %s\n", strings.Join(deps, ""))
	fmt.Fprintf(&b, "Downloads : %d\n", v.Stats.Downloads)
	fmt.Fprintf(&b, "File : %s (%.0f bytes)", v.FileInfo.Name, v.FileInfo.SizeBytes)
	return b.String()
}

// center pads a label with '=' on both sides to the given width.
func center(label string, width int) string {
	if len(label) >= width {
		return label
	}
	left := (width - len(label)) / 2
	right := width - len(label) - left
	return strings.Repeat("=", left) + label + strings.Repeat("=", right)
}

// Package modmeta extracts plugin metadata embedded in jar/zip archives and
// resolves the Sponge API major version a plugin was built against.
//
// Two metadata formats are recognized: the legacy mcmod.info file at the
// archive root, and the modern META-INF/sponge_plugins.json manifest. Both
// normalize into a ModInfo record.
package modmeta

import (
	"errors"
	"strconv"
	"strings"
)

// SpongeAPIID is the dependency identifier plugins use to declare the
// platform API they target, e.g. "spongeapi@7.3".
const SpongeAPIID = "spongeapi"

// ErrNoSpongeTag is returned when neither dependency list declares a
// parseable Sponge API version. Version checking cannot proceed for such a
// plugin because there is no way to pick the matching remote build.
var ErrNoSpongeTag = errors.New("unable to find Sponge API tag")

// ModInfo is the normalized metadata record extracted from a plugin archive.
type ModInfo struct {
	ModID   string
	Name    string
	Version string
	// Dependency spec strings of the form "<id>@<version>", in declaration
	// order. RequiredMods is the secondary list some legacy archives carry.
	Dependencies []string
	RequiredMods []string

	// Set by the modern manifest path, which resolves the API version during
	// normalization (defaulting to 0 when undeclared).
	apiMajor *uint32
}

// SpongeTagVersion returns the Sponge API major version the plugin declares.
// The legacy path searches Dependencies first and falls back to RequiredMods;
// if neither list yields a parseable version it returns ErrNoSpongeTag.
func (m *ModInfo) SpongeTagVersion() (uint32, error) {
	if m.apiMajor != nil {
		return *m.apiMajor, nil
	}
	if major, ok := findMajorVersion(SpongeAPIID, m.Dependencies); ok {
		return major, nil
	}
	if major, ok := findMajorVersion(SpongeAPIID, m.RequiredMods); ok {
		return major, nil
	}
	return 0, ErrNoSpongeTag
}

// findMajorVersion scans an ordered list of "<id>@<version>" spec strings for
// the first entry that both matches the identifier and carries a parseable
// major version. Entries that match the id but not the version format are
// skipped rather than ending the scan.
//
// The id match is a case-insensitive prefix match. The version must contain a
// '.'; its leading segment must parse as an unsigned integer.
func findMajorVersion(id string, list []string) (uint32, bool) {
	for _, spec := range list {
		depID, ver, found := strings.Cut(spec, "@")
		if !found {
			continue
		}
		if len(depID) < len(id) || !strings.EqualFold(depID[:len(id)], id) {
			continue
		}
		if major, ok := parseMajor(ver); ok {
			return major, true
		}
	}
	return 0, false
}

// parseMajor parses the leading dot-separated segment of a version string as
// an unsigned 32-bit integer. A version without a '.' never matches.
func parseMajor(ver string) (uint32, bool) {
	major, _, found := strings.Cut(ver, ".")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseUint(major, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}

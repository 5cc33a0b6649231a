package modmeta

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// legacyInfoFile is the legacy metadata entry at the archive root.
	legacyInfoFile = "mcmod.info"
	// modernInfoFile is the modern plugin manifest entry.
	modernInfoFile = "META-INF/sponge_plugins.json"
)

// ErrNoMetadata is returned when an archive contains neither a legacy nor a
// modern metadata file that parses.
var ErrNoMetadata = errors.New("no recognized plugin metadata in archive")

// EntryReader reads a named entry out of an archive as UTF-8 text.
type EntryReader interface {
	ReadEntry(name string) (string, error)
}

// zipEntryReader adapts a zip archive to the EntryReader interface.
type zipEntryReader struct {
	zr *zip.ReadCloser
}

func (z zipEntryReader) ReadEntry(name string) (string, error) {
	f, err := z.zr.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ExtractFile opens a jar/zip archive and extracts its plugin metadata,
// trying the legacy format first and the modern manifest second.
func ExtractFile(path string) (*ModInfo, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", path, err)
	}
	defer zr.Close()

	return Extract(zipEntryReader{zr: zr})
}

// ExtractDir attempts extraction on every entry of a directory. Entries that
// are not readable plugin archives are dropped; partial success is expected,
// not an error. Results follow directory-iteration order.
func ExtractDir(dir string) ([]*ModInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	var mods []*ModInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := ExtractFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		mods = append(mods, info)
	}
	return mods, nil
}

// Extract runs the metadata strategies against an already-open archive in
// priority order, first success wins.
func Extract(r EntryReader) (*ModInfo, error) {
	for _, extract := range []func(EntryReader) (*ModInfo, error){extractLegacy, extractModern} {
		if info, err := extract(r); err == nil {
			return info, nil
		}
	}
	return nil, ErrNoMetadata
}

// legacy mcmod.info layout: a JSON object whose "info" field holds the
// plugin's identity and dependency lists.
type legacyModFile struct {
	Info legacyModInfo `json:"info"`
}

type legacyModInfo struct {
	ModID        string   `json:"modid"`
	Name         string   `json:"name"`
	Version      string   `json:"version"`
	Dependencies []string `json:"dependencies"`
	RequiredMods []string `json:"requiredMods"`
}

func extractLegacy(r EntryReader) (*ModInfo, error) {
	content, err := r.ReadEntry(legacyInfoFile)
	if err != nil {
		return nil, err
	}

	var file legacyModFile
	if err := json.Unmarshal([]byte(content), &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", legacyInfoFile, err)
	}
	if file.Info.ModID == "" || file.Info.Version == "" {
		return nil, fmt.Errorf("%s is missing modid or version", legacyInfoFile)
	}

	return &ModInfo{
		ModID:        file.Info.ModID,
		Name:         file.Info.Name,
		Version:      file.Info.Version,
		Dependencies: file.Info.Dependencies,
		RequiredMods: file.Info.RequiredMods,
	}, nil
}

// modern sponge_plugins.json layout.
type spongePluginsFile struct {
	Global  *spongeGlobal  `json:"global"`
	Plugins []spongePlugin `json:"plugins"`
}

type spongeGlobal struct {
	Version      string             `json:"version"`
	Dependencies []spongeDependency `json:"dependencies"`
}

type spongePlugin struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Version      string             `json:"version"`
	Dependencies []spongeDependency `json:"dependencies"`
}

type spongeDependency struct {
	ID      string `json:"id"`
	Version string `json:"version"`
}

func extractModern(r EntryReader) (*ModInfo, error) {
	content, err := r.ReadEntry(modernInfoFile)
	if err != nil {
		return nil, err
	}

	var file spongePluginsFile
	if err := json.Unmarshal([]byte(content), &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", modernInfoFile, err)
	}

	// Archives are assumed single-plugin: the first entry is the active one.
	// An empty plugins list yields an empty default record.
	var active spongePlugin
	if len(file.Plugins) > 0 {
		active = file.Plugins[0]
	}

	version := active.Version
	deps := active.Dependencies
	if file.Global != nil {
		deps = file.Global.Dependencies
		if version == "" {
			version = file.Global.Version
		}
	}
	// Some registries reject version identifiers containing spaces.
	version = strings.ReplaceAll(version, " ", "-")

	major := modernAPIMajor(deps)
	return &ModInfo{
		ModID:        active.ID,
		Name:         active.Name,
		Version:      version,
		Dependencies: dependencySpecs(deps),
		apiMajor:     &major,
	}, nil
}

// modernAPIMajor resolves the declared API major from the first dependency
// whose id equals the platform identifier, defaulting to 0.
func modernAPIMajor(deps []spongeDependency) uint32 {
	for _, dep := range deps {
		if strings.EqualFold(dep.ID, SpongeAPIID) {
			major, _ := parseMajor(dep.Version)
			return major
		}
	}
	return 0
}

// dependencySpecs renders structured dependencies into the "<id>@<version>"
// spec form shared with the legacy path.
func dependencySpecs(deps []spongeDependency) []string {
	if len(deps) == 0 {
		return nil
	}
	specs := make([]string, 0, len(deps))
	for _, dep := range deps {
		specs = append(specs, dep.ID+"@"+dep.Version)
	}
	return specs
}

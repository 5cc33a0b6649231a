package cmd

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/DrZoddiak/ore-monitor/logger"
	"github.com/DrZoddiak/ore-monitor/modmeta"
	"github.com/DrZoddiak/ore-monitor/ore"
	"github.com/DrZoddiak/ore-monitor/ui"
	"github.com/DrZoddiak/ore-monitor/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Checks local plugin version(s) and compares them against Ore",
	Long: `Reads the metadata embedded in a plugin archive (or every archive in
a directory), resolves the Sponge API generation each plugin targets, and
compares the local version against the matching promoted version on Ore.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		path := "."
		if len(args) > 0 {
			path = args[0]
		}
		runCheck(path)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkResult is the per-plugin outcome reported to the user.
type checkResult struct {
	ModID         string
	LocalVersion  string
	RemoteVersion string
	Status        version.Status
	statusKnown   bool
	Err           error
}

func runCheck(path string) {
	_, client := bootstrap(".")

	mods := collectMods(path)
	if len(mods) == 0 {
		fmt.Println("No plugin archives found.")
		return
	}

	results := checkMods(client, mods)

	blocks := make([]string, 0, len(results))
	for _, res := range results {
		blocks = append(blocks, res.render())
	}
	fmt.Println(strings.Join(blocks, "\n"))
}

// collectMods extracts metadata from a single archive or from every archive
// in a directory. In directory mode unreadable entries are dropped; in
// single-file mode extraction failure is fatal.
func collectMods(path string) []*modmeta.ModInfo {
	info, err := os.Stat(path)
	if err != nil {
		logger.Log.Fatalw("Failed to access path", zap.String("path", path), zap.Error(err))
	}

	if info.IsDir() {
		mods, err := modmeta.ExtractDir(path)
		if err != nil {
			logger.Log.Fatalw("Failed to read directory", zap.String("path", path), zap.Error(err))
		}
		return mods
	}

	mod, err := modmeta.ExtractFile(path)
	if err != nil {
		logger.Log.Fatalw("Failed to extract plugin metadata", zap.String("path", path), zap.Error(err))
	}
	return []*modmeta.ModInfo{mod}
}

// checkMods fans out one check per plugin. Each check is independent; a
// failure only marks its own result.
func checkMods(client *ore.Client, mods []*modmeta.ModInfo) []checkResult {
	results := make([]checkResult, len(mods))
	var wg sync.WaitGroup

	for i, mod := range mods {
		wg.Add(1)
		go func(i int, mod *modmeta.ModInfo) {
			defer wg.Done()
			results[i] = checkMod(client, mod)
		}(i, mod)
	}

	wg.Wait()
	return results
}

func checkMod(client *ore.Client, mod *modmeta.ModInfo) checkResult {
	log := logger.Log.With(zap.String("mod_id", mod.ModID))
	res := checkResult{ModID: mod.ModID, LocalVersion: mod.Version}

	major, err := mod.SpongeTagVersion()
	if err != nil {
		log.Warnw("Cannot determine platform compatibility", zap.Error(err))
		res.Err = fmt.Errorf("cannot determine platform compatibility: %w", err)
		return res
	}

	project, err := client.GetProject(mod.ModID)
	if err != nil {
		log.Errorw("Failed to fetch remote project", zap.Error(err))
		res.Err = err
		return res
	}

	res.RemoteVersion = project.VersionFromTag(major)
	if res.RemoteVersion == "" {
		log.Infow("No compatible remote version", zap.Uint32("api_major", major))
		return res
	}

	res.Status = version.Compare(mod.Version, res.RemoteVersion)
	res.statusKnown = true
	log.Infow("Checked plugin",
		zap.String("local", res.LocalVersion),
		zap.String("remote", res.RemoteVersion),
		zap.String("status", res.Status.String()),
	)
	return res
}

func (r checkResult) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ModID: %s\n", r.ModID)
	fmt.Fprintf(&b, "Local Version : %s\n", r.LocalVersion)

	switch {
	case r.Err != nil:
		fmt.Fprintf(&b, "Remote Version : unknown\n")
		fmt.Fprintf(&b, "Version Status : %s\n", ui.ErrorStyle.Render(r.Err.Error()))
	case !r.statusKnown:
		fmt.Fprintf(&b, "Remote Version : %s\n", ui.FaintStyle.Render("no compatible remote version"))
		fmt.Fprintf(&b, "Version Status : unknown\n")
	default:
		fmt.Fprintf(&b, "Remote Version : %s\n", r.RemoteVersion)
		fmt.Fprintf(&b, "Version Status : %s\n", ui.RenderStatus(r.Status))
	}
	return b.String()
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/DrZoddiak/ore-monitor/logger"
	"github.com/DrZoddiak/ore-monitor/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pluginCmd represents the plugin command
var pluginCmd = &cobra.Command{
	Use:   "plugin <pluginId>",
	Short: "Retrieves info about a plugin from its plugin id",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		runPluginInfo(args[0])
	},
}

// pluginVersionsCmd shows a plugin's available versions
var pluginVersionsCmd = &cobra.Command{
	Use:   "versions <pluginId> [name]",
	Short: "Shows a list of available versions, or details of a single version",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 1 {
			name = args[1]
		}
		runPluginVersions(cmd, args[0], name)
	},
}

func init() {
	rootCmd.AddCommand(pluginCmd)
	pluginCmd.AddCommand(pluginVersionsCmd)

	pluginVersionsCmd.Flags().StringSliceP("tags", "t", nil, "Comma separated list of tags")
	pluginVersionsCmd.Flags().Int64P("limit", "l", 0, "The limit of versions to display")
	pluginVersionsCmd.Flags().Int64("offset", 0, "Where to begin displaying the list from")
}

func runPluginInfo(pluginID string) {
	_, client := bootstrap(".")

	project, err := client.GetProject(pluginID)
	if err != nil {
		logger.Log.Fatalw("Failed to get project", zap.String("plugin_id", pluginID), zap.Error(err))
	}

	fmt.Println(project)
}

func runPluginVersions(cmd *cobra.Command, pluginID, name string) {
	_, client := bootstrap(".")

	if name != "" {
		version, err := client.GetVersion(pluginID, name)
		if err != nil {
			logger.Log.Fatalw("Failed to get version",
				zap.String("plugin_id", pluginID),
				zap.String("version", name),
				zap.Error(err),
			)
		}
		fmt.Println(version)

		tags := make([]string, 0, len(version.Tags))
		for _, tag := range version.Tags {
			tags = append(tags, ui.Colorize(tag.Name+" "+tag.Data, tag.Color.Background))
		}
		if len(tags) > 0 {
			fmt.Printf("Tags : %s\n", strings.Join(tags, " "))
		}
		return
	}

	tags, _ := cmd.Flags().GetStringSlice("tags")
	limit, _ := cmd.Flags().GetInt64("limit")
	offset, _ := cmd.Flags().GetInt64("offset")

	result, err := client.GetProjectVersions(pluginID, tags, limit, offset)
	if err != nil {
		logger.Log.Fatalw("Failed to get versions", zap.String("plugin_id", pluginID), zap.Error(err))
	}

	// Oldest first, matching the website's ordering.
	for i := len(result.Result) - 1; i >= 0; i-- {
		fmt.Println(&result.Result[i])
	}
}

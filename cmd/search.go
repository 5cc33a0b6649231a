package cmd

import (
	"fmt"

	"github.com/DrZoddiak/ore-monitor/logger"
	"github.com/DrZoddiak/ore-monitor/ore"
	"github.com/DrZoddiak/ore-monitor/ui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for plugins on Ore",
	Long: `Search the Ore registry for plugins matching a query,
optionally filtered by category, tag, or owner.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		runSearch(cmd, query)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceP("category", "c", nil, "Comma separated list of categories")
	searchCmd.Flags().StringSliceP("tags", "t", nil, "Comma separated list of tags")
	searchCmd.Flags().StringP("owner", "o", "", "Search for plugins from an owner")
	searchCmd.Flags().StringP("sort", "s", "", "How to sort the plugins (stars, downloads, views, newest, updated)")
	searchCmd.Flags().BoolP("relevance", "r", true, "Should relevance be considered when sorting projects")
	searchCmd.Flags().Int64P("limit", "l", 0, "The maximum amount of plugins to display")
	searchCmd.Flags().Uint64("offset", 0, "Where to begin displaying the list from")
}

func runSearch(cmd *cobra.Command, query string) {
	_, client := bootstrap(".")

	categories, _ := cmd.Flags().GetStringSlice("category")
	tags, _ := cmd.Flags().GetStringSlice("tags")
	owner, _ := cmd.Flags().GetString("owner")
	sort, _ := cmd.Flags().GetString("sort")
	limit, _ := cmd.Flags().GetInt64("limit")
	offset, _ := cmd.Flags().GetUint64("offset")

	opts := ore.SearchOptions{
		Query:      query,
		Categories: categories,
		Tags:       tags,
		Owner:      owner,
		Sort:       sort,
		Limit:      limit,
		Offset:     offset,
	}
	if cmd.Flags().Changed("relevance") {
		relevance, _ := cmd.Flags().GetBool("relevance")
		opts.Relevance = &relevance
	}

	result, err := client.SearchProjects(opts)
	if err != nil {
		logger.Log.Fatalw("Search failed", zap.Error(err))
	}

	if len(result.Result) == 0 {
		fmt.Println("No plugins found.")
		return
	}

	fmt.Println(ui.HeaderStyle.Render(fmt.Sprintf("Found %d plugin(s)", result.Pagination.Count)))
	for _, project := range result.Result {
		fmt.Println(project.PluginID)
	}
}

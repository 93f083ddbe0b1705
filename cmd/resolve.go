package cmd

import (
	"fmt"

	providerObj "github.com/l3uddz/streamarr/provider"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [PROVIDER] [KEYWORD]",
	Short: "Search a provider for movies and shows",
	Long:  `This command can be used to search a provider for movies and shows.`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		p := loadProvider(args[0])
		fmt.Println(providerObj.SearchJSON(p, args[1]))
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details [PROVIDER] [URL]",
	Short: "Retrieve details for a search result",
	Long:  `This command can be used to retrieve the description, duration and air date of a search result.`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		p := loadProvider(args[0])
		fmt.Println(providerObj.DetailsJSON(p, args[1]))
	},
}

var episodesCmd = &cobra.Command{
	Use:   "episodes [PROVIDER] [URL]",
	Short: "List the episodes of a search result",
	Long:  `This command can be used to list the watchable episodes of a search result.`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		p := loadProvider(args[0])
		fmt.Println(providerObj.EpisodesJSON(p, args[1]))
	},
}

var streamCmd = &cobra.Command{
	Use:   "stream [PROVIDER] [URL]",
	Short: "Resolve the stream of an episode",
	Long:  `This command can be used to resolve the stream and subtitles of an episode url.`,

	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		p := loadProvider(args[0])
		fmt.Println(providerObj.StreamJSON(p, args[1]))
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(streamCmd)
}

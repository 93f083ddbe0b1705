package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/l3uddz/streamarr/config"
	"github.com/l3uddz/streamarr/database"
	providerObj "github.com/l3uddz/streamarr/provider"
	stringutils "github.com/l3uddz/streamarr/utils/strings"
	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers",
	Long:  `This command can be used to list the configured providers and the supported provider types.`,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		names := make([]string, 0, len(config.Config.Providers))
		for name := range config.Config.Providers {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			cfg := config.Config.Providers[name]
			fmt.Printf("%s %s\n", stringutils.StringLeftJust(name, " ", 14), cfg.Type)
		}

		log.Infof("Supported types: %s", strings.Join(providerObj.Types(), ", "))
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cache entries",
	Long:  `This command can be used to remove expired metadata and streams from the cache database.`,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initCache()
		if !database.Enabled() {
			log.Warn("Cache is disabled, nothing to prune")
			return
		}

		removed, err := database.PruneExpired()
		if err != nil {
			log.WithError(err).Fatal("Failed pruning cache")
		}

		log.WithField("removed", removed).Info("Pruned cache")
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(pruneCmd)
}

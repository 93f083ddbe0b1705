package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/l3uddz/streamarr/build"
	"github.com/l3uddz/streamarr/config"
	"github.com/l3uddz/streamarr/database"
	"github.com/l3uddz/streamarr/logger"
	providerObj "github.com/l3uddz/streamarr/provider"
	"github.com/l3uddz/streamarr/utils/paths"
	stringutils "github.com/l3uddz/streamarr/utils/strings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagLogLevel     = 0
	flagConfigFolder = paths.GetCurrentBinaryPath()
	flagConfigFile   = "config.yaml"
	flagDatabaseFile = "cache.db"
	flagLogFile      = "activity.log"

	// Global vars
	log *logrus.Entry
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streamarr",
	Short: "A CLI application to resolve streams from media providers",
	Long: `A CLI application that searches media providers and resolves playable streams.

Results are written to stdout as JSON, logging goes to stderr and the log file.
`,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		database.Close()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Parse persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfigFolder, "config-dir", flagConfigFolder, "Config folder")
	rootCmd.PersistentFlags().StringVarP(&flagConfigFile, "config", "c", flagConfigFile, "Config file")
	rootCmd.PersistentFlags().StringVarP(&flagDatabaseFile, "database", "d", flagDatabaseFile, "Database file")
	rootCmd.PersistentFlags().StringVarP(&flagLogFile, "log", "l", flagLogFile, "Log file")
	rootCmd.PersistentFlags().CountVarP(&flagLogLevel, "verbose", "v", "Verbose level")
}

func initConfig() {
	// Set core variables
	if !rootCmd.PersistentFlags().Changed("config") {
		flagConfigFile = filepath.Join(flagConfigFolder, flagConfigFile)
	}
	if !rootCmd.PersistentFlags().Changed("database") {
		flagDatabaseFile = filepath.Join(flagConfigFolder, flagDatabaseFile)
	}
	if !rootCmd.PersistentFlags().Changed("log") {
		flagLogFile = filepath.Join(flagConfigFolder, flagLogFile)
	}

	// Init Logging
	log = logger.GetLogger("app")

	if err := logger.Init(flagLogLevel, flagLogFile); err != nil {
		log.WithError(err).Fatal("Failed to initialize logging")
	}

	log.Infof("Using %s = %s (%s@%s)", stringutils.StringLeftJust("VERSION", " ", 10),
		build.Version, build.GitCommit, build.Timestamp)
	logger.ShowUsing()

	// Init Config
	if err := config.Init(flagConfigFile); err != nil {
		log.WithError(err).Fatal("Failed to initialize config")
	}
	config.ShowUsing()
}

/* Private Helpers */

// initCache opens the cache database when caching is enabled, failures only disable the cache.
func initCache() {
	if !config.Config.Cache.Enabled {
		return
	}

	if err := database.Init(flagDatabaseFile); err != nil {
		log.WithError(err).Warn("Failed opening database file, caching disabled")
		return
	}
	database.ShowUsing()
}

func loadProvider(name string) providerObj.Interface {
	initCache()

	p, err := providerObj.Load(name)
	if err != nil {
		log.WithError(err).Fatalf("Failed loading provider: %s", name)
	}

	return p
}

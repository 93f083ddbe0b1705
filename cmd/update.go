package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/l3uddz/streamarr/build"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"
)

var (
	updateRepository = "l3uddz/streamarr"
	flagUpdateYes    = false
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update to latest release",
	Long:  `This command can be used to update to the latest release.`,

	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// parse current version
		v, err := semver.ParseTolerant(build.Version)
		if err != nil {
			log.WithError(err).Fatalf("Failed parsing current build version: %s", build.Version)
		}

		// check for the update
		latest, found, err := selfupdate.DetectLatest(updateRepository)
		switch {
		case err != nil:
			log.WithError(err).Fatal("Failed checking for latest version")
		case !found || latest.Version.LTE(v):
			log.Infof("No update available, already using the latest version: %s", build.Version)
			return
		}

		// confirm update
		if !flagUpdateYes {
			fmt.Printf("Do you want to update to %s? (y/n): ", latest.Version)
			input, err := bufio.NewReader(os.Stdin).ReadString('\n')
			if err != nil || !strings.EqualFold(strings.TrimSpace(input), "y") {
				log.Info("Update cancelled")
				return
			}
		}

		// fetch the update and apply it
		exe, err := os.Executable()
		if err != nil {
			log.WithError(err).Fatal("Failed locating current executable")
		}

		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			log.WithError(err).Fatalf("Failed updating to latest version: %s", latest.Version)
		}

		log.Infof("Updated to latest version: %s", latest.Version)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVarP(&flagUpdateYes, "yes", "y", false, "Update without confirmation")
}

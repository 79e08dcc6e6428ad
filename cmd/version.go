package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("tensebunny", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}
		res, err := selfupdate.NewChecker().Check(cmd.Context(), &selfupdate.CheckInput{Version: version})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if res.UpdateAvailable {
			fmt.Printf("A newer version is available: %s (%s)\n", res.LatestVersion, res.ReleaseURL)
			fmt.Println("Run: tensebunny update")
		} else {
			fmt.Println("You are on the latest version.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check whether a newer release exists")
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/selfupdate"
)

// Release builds set this with -ldflags "-X .../cmd.version=vX.Y.Z".
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sparky version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version)
	},
}

package cmd

import (
	"fmt"

	"github.com/aiexplorations/beam-column-simulation/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of beamcol",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("beamcol v%s\n", version.Version)
		fmt.Println("Beam-Column Simulation Tool")
		fmt.Printf("build: %s, commit: %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

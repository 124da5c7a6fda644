package cmd

import (
	"fmt"
	"os"

	"github.com/aiexplorations/beam-column-simulation/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beamcol",
	Short: "Beam-Column Simulation Tool",
	Long: `beamcol - Beam-Column Simulator

A CLI tool for computing the static response of a prismatic beam-column
under combined axial compression, distributed lateral load, self-weight
and point loads, using Timoshenko beam theory with P-Δ amplification.

This tool helps structural engineers obtain:
  - Deflection, rotation, bending moment and shear along the member
  - Bending, axial and combined stresses and strains
  - Critical buckling loads for the supported end conditions
  - Terminal and image diagrams of the solution fields`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   beamcol v%-47s║\n", version.Version)
		fmt.Println("  ║   Beam-Column Simulator                                   ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for the static analysis of prismatic beam-columns")
		fmt.Println("  under combined axial and lateral loading.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Timoshenko (shear-deformable) beam-column solver")
		fmt.Println("    • P-Δ second-order amplification from the axial load")
		fmt.Println("    • Four support configurations, up to five point loads")
		fmt.Println("    • Stress, strain and buckling summaries with diagrams")
		fmt.Println()
		fmt.Println("  Use 'beamcol --help' to see available commands.")
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

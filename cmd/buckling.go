package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/aiexplorations/beam-column-simulation/internal/beam"
	"github.com/aiexplorations/beam-column-simulation/internal/material"
	"github.com/aiexplorations/beam-column-simulation/internal/section"
	"github.com/spf13/cobra"
)

var (
	bucklingLength   float64
	bucklingWidth    float64
	bucklingHeight   float64
	bucklingMaterial string
)

var bucklingCmd = &cobra.Command{
	Use:   "buckling",
	Short: "Print Euler critical buckling loads for all support kinds",
	Long: `Compute the Euler critical buckling load Pcr = π²EI/(K·L)² of a
rectangular member for each supported end condition.

Example:
  beamcol buckling --length 2 --width 0.1 --height 0.1 --material Steel`,
	RunE: runBuckling,
}

func init() {
	rootCmd.AddCommand(bucklingCmd)

	bucklingCmd.Flags().Float64VarP(&bucklingLength, "length", "L", 0, "Member length (m) [required]")
	bucklingCmd.Flags().Float64VarP(&bucklingWidth, "width", "b", 0, "Section width (m) [required]")
	bucklingCmd.Flags().Float64VarP(&bucklingHeight, "height", "H", 0, "Section height (m) [required]")
	bucklingCmd.Flags().StringVar(&bucklingMaterial, "material", "Steel", "Material name")

	bucklingCmd.MarkFlagRequired("length")
	bucklingCmd.MarkFlagRequired("width")
	bucklingCmd.MarkFlagRequired("height")
}

func runBuckling(cmd *cobra.Command, args []string) error {
	mat, err := material.Lookup(bucklingMaterial)
	if err != nil {
		return err
	}
	sec := section.Rectangular{Width: bucklingWidth, Height: bucklingHeight}

	fmt.Println()
	fmt.Println("CRITICAL BUCKLING LOADS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Member:\t%.3f m, %.3f x %.3f m, %s\n", bucklingLength, sec.Width, sec.Height, mat.Name)
	fmt.Fprintln(w, "  \t")
	fmt.Fprintln(w, "  Support\tK\tPcr")
	for _, kind := range beam.BoundaryConditions() {
		prob := beam.Problem{Length: bucklingLength, Section: sec, Material: mat, Support: kind}
		if err := prob.Validate(); err != nil {
			return err
		}
		k, err := kind.EffectiveLengthFactor()
		if err != nil {
			return err
		}
		pcr, err := prob.CriticalBucklingLoad()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%.1f\t%.2f kN\n", kind, k, pcr/1e3)
	}
	w.Flush()
	fmt.Println()
	return nil
}
